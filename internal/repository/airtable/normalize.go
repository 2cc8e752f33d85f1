package airtable

import (
	"fmt"
	"strconv"
	"strings"

	"azm-catalog-backend/internal/domain"
	"azm-catalog-backend/internal/infrastructure/airtable"
	"azm-catalog-backend/pkg/utils"
)

// Normalize maps one raw record into a Product. It is total: malformed or
// missing fields fall back to their zero values, never to an error.
func Normalize(rec *airtable.Record) domain.Product {
	f := rec.Fields

	p := domain.Product{
		ID:          rec.ID,
		Code:        str(f, "code"),
		Category:    str(f, "category"),
		Name:        str(f, "name"),
		Decor:       str(f, "decor"),
		Structure:   str(f, "structure"),
		Description: str(f, "description"),
		Producer:    str(f, "producer"),
		Label:       str(f, "label"),
		SellUnit:    str(f, "sellUnit"),
		TypePrice:   str(f, "typePrice"),
		Type:        str(f, "type"),
		URL:         str(f, "url"),
		Thickness:   intVal(f, "thickness"),
		Height:      intVal(f, "height"),
		Widths:      dimList(f, "width", domain.MaxWidthSlots),
		Lengths:     dimList(f, "length", domain.MaxLengthSlots),
		SideMode:    sideMode(f["side"]),
		Prices:      priceMatrix(f),
		LinkedIDs:   linkedIDs(f, "calculator_link"),
		Front:       frontDetails(f),
	}

	if v := ParsePrice(f["price"]); v != nil {
		p.Price = *v
	}
	return p
}

// ParsePrice accepts a numeric value or a currency string of the form
// "PLN 123,45". Unparsable input normalizes to absent, not to zero.
func ParsePrice(value interface{}) *float64 {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(v, "PLN", ""), ",", "."))
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// priceMatrix collects the price_{width}_m_{side} columns into a sparse map.
// Only positive cells are kept; an absent cell means the combination is not sold.
func priceMatrix(f map[string]interface{}) map[domain.PriceKey]float64 {
	m := make(map[domain.PriceKey]float64)
	for _, w := range domain.StandardWidths {
		for _, s := range []int{domain.SideSingle, domain.SideDouble} {
			v := ParsePrice(f[fmt.Sprintf("price_%d_m_%d", w, s)])
			if v != nil && *v > 0 {
				m[domain.PriceKey{Width: w, Side: s}] = *v
			}
		}
	}
	return m
}

// sideMode normalizes the side field (1, 2 or "1_2") to its string form.
func sideMode(v interface{}) string {
	switch s := v.(type) {
	case float64:
		return strconv.Itoa(int(s))
	case string:
		return strings.TrimSpace(s)
	default:
		return ""
	}
}

// dimList handles fields that hold either a single number or a
// semicolon-delimited list ("600; 900; 1200").
func dimList(f map[string]interface{}, key string, maxSlots int) []int {
	switch v := f[key].(type) {
	case float64:
		return []int{int(v)}
	case string:
		return utils.ParseIntList(v, ";", maxSlots)
	default:
		return nil
	}
}

func linkedIDs(f map[string]interface{}, key string) []string {
	raw, ok := f[key].([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if id, ok := item.(string); ok && id != "" {
			out = append(out, id)
		}
	}
	return out
}

// frontDetails is attached only when the record carries at least one of the
// front-catalog columns.
func frontDetails(f map[string]interface{}) *domain.FrontDetails {
	d := domain.FrontDetails{
		FrontType:       str(f, "front_typ"),
		MillingType:     str(f, "frez_typ"),
		Color:           str(f, "kolor"),
		Info:            str(f, "info"),
		LeadTime:        str(f, "czas_oczekiwania"),
		GrossPrice:      ParsePrice(f["cena_brutto"]),
		GrossPriceLaser: ParsePrice(f["cena_brutto_laser"]),
	}
	if d.FrontType == "" && d.MillingType == "" && d.Color == "" && d.Info == "" &&
		d.LeadTime == "" && d.GrossPrice == nil && d.GrossPriceLaser == nil {
		return nil
	}
	return &d
}

func str(f map[string]interface{}, key string) string {
	if s, ok := f[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func intVal(f map[string]interface{}, key string) int {
	switch v := f[key].(type) {
	case float64:
		return int(v)
	case string:
		return utils.ParseInt(strings.TrimSpace(v), 0)
	default:
		return 0
	}
}
