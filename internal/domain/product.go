package domain

import (
	"context"
	"sort"
	"strings"
)

// Flavor is the navigation flavor a lookup runs under. It selects which table
// set is probed and whether the id→table mapping may be cached.
type Flavor string

// PriceKey addresses one cell of the sparse worktop price matrix.
type PriceKey struct {
	Width int
	Side  int
}

// Product is the normalized shape of one remote record. Every field is
// defaulted; a zero Product is valid.
type Product struct {
	ID   string `json:"id"`
	Code string `json:"code"` // family code, shared across thickness variants

	Category    string `json:"category"`
	Name        string `json:"name"`
	Decor       string `json:"decor"`
	Structure   string `json:"structure"`
	Description string `json:"description"`
	Producer    string `json:"producer"`
	Label       string `json:"label"`
	SellUnit    string `json:"sellUnit"`
	TypePrice   string `json:"typePrice"`
	Type        string `json:"type"`
	URL         string `json:"url"`

	// Scalar price, used directly for non-worktop categories
	Price float64 `json:"price"`

	// Dimensions (mm)
	Thickness int   `json:"thickness"`
	Height    int   `json:"height"`
	Widths    []int `json:"widths"`  // up to MaxWidthSlots parsed slots
	Lengths   []int `json:"lengths"` // up to MaxLengthSlots parsed slots

	// SideMode is "1", "2" or SideModeChoice
	SideMode string `json:"side"`

	// Prices is the sparse (width, side) → price-per-meter matrix. Absence of
	// a cell means that combination is not sold.
	Prices map[PriceKey]float64 `json:"-"`

	// LinkedIDs are record ids of thickness variants (calculator_link field)
	LinkedIDs []string `json:"-"`

	// Front-only attributes, nil for other flavors
	Front *FrontDetails `json:"front,omitempty"`
}

// FrontDetails carries the optional attributes of front-catalog records.
type FrontDetails struct {
	FrontType       string   `json:"frontTyp"`
	MillingType     string   `json:"frezTyp"`
	Color           string   `json:"kolor"`
	Info            string   `json:"info"`
	LeadTime        string   `json:"czasOczekiwania"`
	GrossPrice      *float64 `json:"cenaBrutto,omitempty"`
	GrossPriceLaser *float64 `json:"cenaBruttoLaser,omitempty"`
}

// ProductWithVariants is a primary product plus its resolved thickness
// siblings. Siblings never repeat the primary's thickness.
type ProductWithVariants struct {
	Product           Product   `json:"product"`
	ThicknessVariants []Product `json:"thicknessVariants,omitempty"`
}

// DisplayMode classifies the product for presentation. The front flag wins
// only when the category matches neither known name.
func (p *Product) DisplayMode(front bool) string {
	switch {
	case strings.EqualFold(p.Category, CategoryWorktop):
		return ModeWorktop
	case strings.EqualFold(p.Category, CategoryPanel):
		return ModePanel
	case front:
		return ModeFront
	default:
		return ModeGeneric
	}
}

// IsWorktop reports whether the product belongs to the worktop category.
func (p *Product) IsWorktop() bool {
	return strings.EqualFold(p.Category, CategoryWorktop)
}

// UnitPrice returns the matrix cell for (width, side), if populated.
func (p *Product) UnitPrice(width, side int) (float64, bool) {
	v, ok := p.Prices[PriceKey{Width: width, Side: side}]
	return v, ok
}

// WidthOptions lists the widths of the fixed enumeration that carry a price
// under the given side finish, in ascending enumeration order.
func (p *Product) WidthOptions(side int) []int {
	var out []int
	for _, w := range StandardWidths {
		if _, ok := p.UnitPrice(w, side); ok {
			out = append(out, w)
		}
	}
	return out
}

// ThicknessOptions is the union of the primary thickness and all variant
// thicknesses, de-duplicated and sorted ascending.
func (pw *ProductWithVariants) ThicknessOptions() []int {
	seen := map[int]bool{pw.Product.Thickness: true}
	out := []int{pw.Product.Thickness}
	for _, v := range pw.ThicknessVariants {
		if !seen[v.Thickness] {
			seen[v.Thickness] = true
			out = append(out, v.Thickness)
		}
	}
	sort.Ints(out)
	return out
}

// ByThickness returns the product carrying the given thickness, falling back
// to the primary when no variant matches.
func (pw *ProductWithVariants) ByThickness(thickness int) *Product {
	if thickness == pw.Product.Thickness {
		return &pw.Product
	}
	for i := range pw.ThicknessVariants {
		if pw.ThicknessVariants[i].Thickness == thickness {
			return &pw.ThicknessVariants[i]
		}
	}
	return &pw.Product
}

// --- Interfaces ---

// ProductRepository locates and normalizes records from the remote store.
type ProductRepository interface {
	// Locate finds the record by id, probing hint → cache → every table of the
	// flavor's set in priority order. A transport failure on one table counts
	// as a negative answer for that table only; an exhausted probe returns
	// ErrNotFound.
	Locate(ctx context.Context, id string, flavor Flavor, tableHint string) (*Product, error)

	// FindByCode searches the flavor's tables for records sharing a family code.
	FindByCode(ctx context.Context, code string, flavor Flavor, limit int) ([]Product, error)
}
