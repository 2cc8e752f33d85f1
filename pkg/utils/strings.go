package utils

import (
	"strconv"
	"strings"
)

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseIntList splits a delimited string ("3050; 4200") into integers.
// Tokens that fail to parse are dropped; maxSlots > 0 caps the result,
// excess tokens are silently discarded.
func ParseIntList(s, sep string, maxSlots int) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, tok := range strings.Split(s, sep) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		out = append(out, v)
		if maxSlots > 0 && len(out) == maxSlots {
			break
		}
	}
	return out
}
