package v1

import (
	"sort"

	"azm-catalog-backend/internal/domain"
	"azm-catalog-backend/internal/usecase"
	"azm-catalog-backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// Each display mode renders its own disjoint field template; the mode
// discriminator tells clients which one they got.

type BaseView struct {
	ID          string `json:"id"`
	Mode        string `json:"mode"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Decor       string `json:"decor"`
	Structure   string `json:"structure"`
	Description string `json:"description"`
}

type WorktopView struct {
	BaseView
	Producer   string                  `json:"producer,omitempty"`
	Label      string                  `json:"label,omitempty"`
	Variants   []VariantCard           `json:"variants,omitempty"`
	Calculator usecase.CalculatorState `json:"calculator"`
}

// VariantCard is the summary card shown per thickness variant.
type VariantCard struct {
	ID         string `json:"id"`
	Type       string `json:"type,omitempty"`
	GrossPrice string `json:"grossPrice"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Thickness  int    `json:"thickness"`
	SellUnit   string `json:"sellUnit,omitempty"`
}

type PanelView struct {
	BaseView
	GrossPrice string `json:"grossPrice"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Thickness  int    `json:"thickness"`
	SellUnit   string `json:"sellUnit,omitempty"`
}

type FrontView struct {
	BaseView
	FrontType       string `json:"frontTyp,omitempty"`
	MillingType     string `json:"frezTyp,omitempty"`
	Color           string `json:"kolor,omitempty"`
	Info            string `json:"info,omitempty"`
	LeadTime        string `json:"czasOczekiwania,omitempty"`
	GrossPrice      string `json:"cenaBrutto,omitempty"`
	GrossPriceLaser string `json:"cenaBruttoLaser,omitempty"`
}

type GenericView struct {
	BaseView
	GrossPrice string `json:"grossPrice"`
	Producer   string `json:"producer,omitempty"`
	Thickness  int    `json:"thickness,omitempty"`
}

func baseView(p *domain.Product, mode string) BaseView {
	return BaseView{
		ID:          p.ID,
		Mode:        mode,
		Code:        p.Code,
		Name:        p.Name,
		Decor:       p.Decor,
		Structure:   p.Structure,
		Description: p.Description,
	}
}

func firstOrZero(vals []int) int {
	if len(vals) > 0 {
		return vals[0]
	}
	return 0
}

// fixed2 formats an already-gross figure to two decimals without re-taxing it.
func fixed2(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}

// NewProductView builds the mode-specific template for a fetched product.
func NewProductView(pw *domain.ProductWithVariants, mode string, calc *usecase.CalculatorUsecase) interface{} {
	p := &pw.Product
	rules := calc.Rules()

	switch mode {
	case domain.ModeWorktop:
		return WorktopView{
			BaseView:   baseView(p, mode),
			Producer:   p.Producer,
			Label:      p.Label,
			Variants:   variantCards(pw, rules),
			Calculator: calc.State(pw, usecase.Selections{}),
		}

	case domain.ModePanel:
		return PanelView{
			BaseView:   baseView(p, mode),
			GrossPrice: rules.Gross(p.Price),
			Width:      firstOrZero(p.Widths),
			Height:     p.Height,
			Thickness:  p.Thickness,
			SellUnit:   p.SellUnit,
		}

	case domain.ModeFront:
		v := FrontView{BaseView: baseView(p, mode)}
		if f := p.Front; f != nil {
			v.FrontType = f.FrontType
			v.MillingType = f.MillingType
			v.Color = f.Color
			v.Info = f.Info
			v.LeadTime = f.LeadTime
			if f.GrossPrice != nil {
				v.GrossPrice = fixed2(*f.GrossPrice)
			}
			if f.GrossPriceLaser != nil {
				v.GrossPriceLaser = fixed2(*f.GrossPriceLaser)
			}
		}
		return v

	default:
		return GenericView{
			BaseView:   baseView(p, mode),
			GrossPrice: rules.Gross(p.Price),
			Producer:   p.Producer,
			Thickness:  p.Thickness,
		}
	}
}

// variantCards renders one summary card per thickness variant, ordered by the
// numeric value of the type field.
func variantCards(pw *domain.ProductWithVariants, rules usecase.PricingRules) []VariantCard {
	if len(pw.ThicknessVariants) == 0 {
		return nil
	}
	cards := make([]VariantCard, 0, len(pw.ThicknessVariants))
	for i := range pw.ThicknessVariants {
		v := &pw.ThicknessVariants[i]
		cards = append(cards, VariantCard{
			ID:         v.ID,
			Type:       v.Type,
			GrossPrice: rules.Gross(v.Price),
			Width:      firstOrZero(v.Widths),
			Height:     v.Height,
			Thickness:  v.Thickness,
			SellUnit:   v.SellUnit,
		})
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return utils.ParseInt(cards[i].Type, 0) < utils.ParseInt(cards[j].Type, 0)
	})
	return cards
}
