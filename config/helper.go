package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

func getFloatEnv(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid float for %s, using fallback", key)
	}
	return fallback
}

// getListEnv reads a comma-separated list; blank tokens are dropped.
func getListEnv(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, tok := range strings.Split(value, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	if len(out) == 0 {
		log.Printf("Empty list for %s, using fallback", key)
		return fallback
	}
	return out
}
