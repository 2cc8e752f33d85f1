package usecase

import (
	"testing"

	"azm-catalog-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRules() PricingRules {
	return NewPricingRules(1.23, "Kronospan", "SL")
}

func worktopFixture() *domain.ProductWithVariants {
	return &domain.ProductWithVariants{
		Product: domain.Product{
			ID:        "rec38",
			Code:      "D4428",
			Category:  "Blat",
			Producer:  "Egger",
			Thickness: 38,
			Lengths:   []int{3050, 4200},
			SideMode:  domain.SideModeChoice,
			Prices: map[domain.PriceKey]float64{
				{Width: 600, Side: 1}: 120,
				{Width: 900, Side: 1}: 150,
				{Width: 600, Side: 2}: 140,
			},
		},
		ThicknessVariants: []domain.Product{
			{
				ID:        "rec28",
				Code:      "D4428",
				Category:  "Blat",
				Producer:  "Egger",
				Thickness: 28,
				Lengths:   []int{2600},
				SideMode:  domain.SideModeChoice,
				Prices: map[domain.PriceKey]float64{
					{Width: 700, Side: 1}: 80,
				},
			},
		},
	}
}

func TestDeriveDefaults(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	sel := uc.Derive(pw, Selections{})

	assert.Equal(t, 38, sel.Thickness)
	assert.Equal(t, domain.SideSingle, sel.Side)
	assert.Equal(t, 600, sel.Width, "first legal width in enumeration order")
	assert.Equal(t, 3050, sel.Length, "first length in record order")
}

func TestDerivePreservesStillLegalSelections(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	sel := uc.Derive(pw, Selections{Width: 900, Length: 4200})

	assert.Equal(t, 900, sel.Width, "a legal prior width must not be reset")
	assert.Equal(t, 4200, sel.Length)
}

func TestDeriveSideChangeReselectsFirstLegalWidth(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	// width 900 has no double-sided cell, so switching sides must drop it
	sel := uc.Derive(pw, Selections{Side: domain.SideDouble, Width: 900, Length: 3050})

	assert.Equal(t, domain.SideDouble, sel.Side)
	assert.Equal(t, 600, sel.Width, "first legal width ascending, not an arbitrary one")
}

func TestDeriveThicknessSwitchActivatesSibling(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	sel := uc.Derive(pw, Selections{Thickness: 28, Width: 900, Length: 3050})

	assert.Equal(t, 28, sel.Thickness)
	assert.Equal(t, 700, sel.Width, "width legality is judged against the sibling's matrix")
	assert.Equal(t, 2600, sel.Length)
}

func TestDeriveUnknownThicknessFallsBackToPrimary(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	sel := uc.Derive(pw, Selections{Thickness: 99})
	assert.Equal(t, 38, sel.Thickness)
}

func TestSideForcedToSingle(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())

	testCases := []struct {
		name     string
		sideMode string
		label    string
	}{
		{"side mode 1", "1", ""},
		{"side mode 2", "2", ""},
		{"slim line label", domain.SideModeChoice, "SL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pw := worktopFixture()
			pw.Product.SideMode = tc.sideMode
			pw.Product.Label = tc.label

			assert.False(t, uc.SideSelectable(&pw.Product))
			sel := uc.Derive(pw, Selections{Side: domain.SideDouble})
			assert.Equal(t, domain.SideSingle, sel.Side, "price must always use side 1")
		})
	}
}

func TestQuotePerMeter(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	q := uc.Quote(&pw.Product, Selections{Side: 1, Width: 600, Length: 3050})

	require.NotNil(t, q)
	assert.Equal(t, "366.00", q.Net, "120.00/m over 3.05m")
	assert.Equal(t, "450.18", q.Gross)
	assert.False(t, q.PerItem)
}

func TestQuoteFlatRateProducerIgnoresLength(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()
	pw.Product.Producer = "Kronospan"

	short := uc.Quote(&pw.Product, Selections{Side: 1, Width: 600, Length: 3050})
	long := uc.Quote(&pw.Product, Selections{Side: 1, Width: 600, Length: 4200})

	require.NotNil(t, short)
	require.NotNil(t, long)
	assert.Equal(t, "120.00", short.Net, "the matrix cell is the whole item price")
	assert.Equal(t, short.Net, long.Net, "net is independent of the selected length")
	assert.Equal(t, "147.60", short.Gross)
	assert.True(t, short.PerItem)
}

func TestQuoteAbsentWhenNotComputable(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	assert.Nil(t, uc.Quote(&pw.Product, Selections{Side: 1, Width: 0, Length: 3050}), "no width")
	assert.Nil(t, uc.Quote(&pw.Product, Selections{Side: 1, Width: 600, Length: 0}), "no length")
	assert.Nil(t, uc.Quote(&pw.Product, Selections{Side: 2, Width: 900, Length: 3050}), "unpopulated cell")
}

func TestStateBundlesOptionsAndPrice(t *testing.T) {
	uc := NewCalculatorUsecase(testRules())
	pw := worktopFixture()

	state := uc.State(pw, Selections{})

	assert.Equal(t, []int{28, 38}, state.Thicknesses)
	assert.True(t, state.SideSelectable)
	assert.Equal(t, []int{1, 2}, state.Sides)
	assert.Equal(t, []int{600, 900}, state.Widths)
	assert.Equal(t, []int{3050, 4200}, state.Lengths)
	require.NotNil(t, state.Price)
	assert.Equal(t, "366.00", state.Price.Net)
}

func TestGrossDisplayFormatting(t *testing.T) {
	rules := testRules()
	assert.Equal(t, "123.00", rules.Gross(100))
	assert.Equal(t, "1.23", rules.Gross(1))
	assert.Equal(t, "0.00", rules.Gross(0))
}
