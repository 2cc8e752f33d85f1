package usecase

import (
	"slices"

	"azm-catalog-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// PricingRules carries the fixed commercial constants, injected at
// construction so tests can run against fabricated rule sets.
type PricingRules struct {
	VATRate          decimal.Decimal
	FlatRateProducer string
	SingleSidedLabel string
}

func NewPricingRules(vatRate float64, flatRateProducer, singleSidedLabel string) PricingRules {
	return PricingRules{
		VATRate:          decimal.NewFromFloat(vatRate),
		FlatRateProducer: flatRateProducer,
		SingleSidedLabel: singleSidedLabel,
	}
}

// Gross applies the tax multiplier to a net figure and formats it to exactly
// two decimal places.
func (r PricingRules) Gross(net float64) string {
	return decimal.NewFromFloat(net).Mul(r.VATRate).StringFixed(2)
}

// Selections is the calculator state: each axis either unset (zero) or one of
// the legal values of the active product.
type Selections struct {
	Thickness int `json:"thickness"`
	Side      int `json:"side"`
	Width     int `json:"width"`
	Length    int `json:"length"`
}

// Quote is a computed price for one fully-selected configuration.
type Quote struct {
	Net     string  `json:"net"`
	Gross   string  `json:"gross"`
	Unit    float64 `json:"unit"`
	PerItem bool    `json:"perItem"` // flat per-item price, not per linear meter
}

// CalculatorState is everything a client needs to render the worktop
// calculator: legal option sets plus the legalized selections and their price.
type CalculatorState struct {
	Thicknesses    []int      `json:"thicknesses"`
	SideSelectable bool       `json:"sideSelectable"`
	Sides          []int      `json:"sides"`
	Widths         []int      `json:"widths"`
	Lengths        []int      `json:"lengths"`
	Selections     Selections `json:"selections"`
	Price          *Quote     `json:"price,omitempty"`
}

type CalculatorUsecase struct {
	rules PricingRules
}

func NewCalculatorUsecase(rules PricingRules) *CalculatorUsecase {
	return &CalculatorUsecase{rules: rules}
}

func (uc *CalculatorUsecase) Rules() PricingRules {
	return uc.rules
}

// SideSelectable reports whether the buyer may pick the side finish. Products
// without the choice marker, and slim-line labeled ones, always price side 1.
func (uc *CalculatorUsecase) SideSelectable(p *domain.Product) bool {
	return p.SideMode == domain.SideModeChoice && p.Label != uc.rules.SingleSidedLabel
}

// Derive legalizes requested selections against the product family: a
// still-legal prior selection is preserved, anything else falls to the first
// legal value. Changing thickness switches the active product to the matching
// sibling before width and length legality is judged.
func (uc *CalculatorUsecase) Derive(pw *domain.ProductWithVariants, req Selections) Selections {
	var out Selections

	out.Thickness = pw.Product.Thickness
	if req.Thickness != 0 && slices.Contains(pw.ThicknessOptions(), req.Thickness) {
		out.Thickness = req.Thickness
	}
	active := pw.ByThickness(out.Thickness)

	out.Side = domain.SideSingle
	if uc.SideSelectable(active) && req.Side == domain.SideDouble {
		out.Side = domain.SideDouble
	}

	widths := active.WidthOptions(out.Side)
	if req.Width != 0 && slices.Contains(widths, req.Width) {
		out.Width = req.Width
	} else if len(widths) > 0 {
		out.Width = widths[0]
	}

	if req.Length != 0 && slices.Contains(active.Lengths, req.Length) {
		out.Length = req.Length
	} else if len(active.Lengths) > 0 {
		out.Length = active.Lengths[0]
	}

	return out
}

// Quote computes net and gross for one configuration. A missing width or
// length, or an unpopulated matrix cell, yields no quote rather than an error.
func (uc *CalculatorUsecase) Quote(p *domain.Product, sel Selections) *Quote {
	if sel.Width == 0 || sel.Length == 0 {
		return nil
	}
	unit, ok := p.UnitPrice(sel.Width, sel.Side)
	if !ok {
		return nil
	}

	net := decimal.NewFromFloat(unit)
	perItem := p.Producer == uc.rules.FlatRateProducer
	if !perItem {
		// per-meter price scaled to the selected length in meters
		net = net.Mul(decimal.NewFromInt(int64(sel.Length))).Div(decimal.NewFromInt(1000))
	}
	gross := net.Mul(uc.rules.VATRate)

	return &Quote{
		Net:     net.StringFixed(2),
		Gross:   gross.StringFixed(2),
		Unit:    unit,
		PerItem: perItem,
	}
}

// State derives the full calculator payload for a product family and a set of
// (possibly stale) requested selections.
func (uc *CalculatorUsecase) State(pw *domain.ProductWithVariants, req Selections) CalculatorState {
	sel := uc.Derive(pw, req)
	active := pw.ByThickness(sel.Thickness)

	selectable := uc.SideSelectable(active)
	sides := []int{domain.SideSingle}
	if selectable {
		sides = []int{domain.SideSingle, domain.SideDouble}
	}

	return CalculatorState{
		Thicknesses:    pw.ThicknessOptions(),
		SideSelectable: selectable,
		Sides:          sides,
		Widths:         active.WidthOptions(sel.Side),
		Lengths:        active.Lengths,
		Selections:     sel,
		Price:          uc.Quote(active, sel),
	}
}
