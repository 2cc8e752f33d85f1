package airtable

import (
	"testing"

	"azm-catalog-backend/internal/domain"
	"azm-catalog-backend/internal/infrastructure/airtable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		name     string
		input    interface{}
		expected *float64
	}{
		{"currency string with comma", "PLN 123,45", fptr(123.45)},
		{"currency string without marker", "88,50", fptr(88.5)},
		{"plain number", float64(99), fptr(99)},
		{"integer", 42, fptr(42)},
		{"garbage string", "not a number", nil},
		{"empty string", "", nil},
		{"nil", nil, nil},
		{"unexpected type", []interface{}{"PLN 1"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePrice(tc.input)
			if tc.expected == nil {
				assert.Nil(t, got, "unparsable input must be absent, not zero")
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tc.expected, *got, 1e-9)
		})
	}
}

func TestNormalizeFullWorktopRecord(t *testing.T) {
	rec := &airtable.Record{
		ID: "rec123",
		Fields: map[string]interface{}{
			"code":        "D4428",
			"category":    "Blat",
			"name":        "  Blat roboczy  ",
			"decor":       "Dąb",
			"structure":   "VL",
			"description": "opis",
			"producer":    "Egger",
			"label":       "SL",
			"thickness":   float64(38),
			"height":      float64(600),
			"width":       "600; 900; 1200",
			"length":      "3050; 4200; 5000",
			"side":        "1_2",
			"price":       "PLN 240,00",

			"price_600_m_1":  "PLN 120,00",
			"price_900_m_1":  float64(150),
			"price_600_m_2":  "PLN 140,00",
			"price_1300_m_1": "broken",
			"price_700_m_1":  float64(0), // non-positive cells are not sold

			"calculator_link": []interface{}{"recAAA", "recBBB"},
		},
	}

	p := Normalize(rec)

	assert.Equal(t, "rec123", p.ID)
	assert.Equal(t, "D4428", p.Code)
	assert.Equal(t, "Blat roboczy", p.Name, "strings are trimmed")
	assert.True(t, p.IsWorktop())
	assert.Equal(t, 38, p.Thickness)
	assert.Equal(t, []int{600, 900, 1200}, p.Widths)
	assert.Equal(t, []int{3050, 4200}, p.Lengths, "length keeps only the first two slots")
	assert.Equal(t, domain.SideModeChoice, p.SideMode)
	assert.InDelta(t, 240.0, p.Price, 1e-9)
	assert.Equal(t, []string{"recAAA", "recBBB"}, p.LinkedIDs)
	assert.Nil(t, p.Front)

	assert.Len(t, p.Prices, 3)
	unit, ok := p.UnitPrice(600, domain.SideSingle)
	require.True(t, ok)
	assert.InDelta(t, 120.0, unit, 1e-9)
	_, ok = p.UnitPrice(1300, domain.SideSingle)
	assert.False(t, ok, "unparsable cell stays absent")
	_, ok = p.UnitPrice(700, domain.SideSingle)
	assert.False(t, ok, "zero cell stays absent")
}

func TestNormalizeIsTotal(t *testing.T) {
	p := Normalize(&airtable.Record{ID: "recEmpty", Fields: map[string]interface{}{}})

	assert.Equal(t, "recEmpty", p.ID)
	assert.Empty(t, p.Name)
	assert.Zero(t, p.Thickness)
	assert.Empty(t, p.Widths)
	assert.Empty(t, p.Lengths)
	assert.Empty(t, p.Prices)
	assert.Nil(t, p.Front)
	assert.Equal(t, domain.ModeGeneric, p.DisplayMode(false))
}

func TestNormalizeMalformedDimensionTokens(t *testing.T) {
	p := Normalize(&airtable.Record{
		ID: "recDims",
		Fields: map[string]interface{}{
			"length": " 3050 ; oops; 4200 ",
			"width":  float64(635),
		},
	})

	assert.Equal(t, []int{3050, 4200}, p.Lengths, "bad tokens are dropped, not zeroed")
	assert.Equal(t, []int{635}, p.Widths, "numeric width becomes a single slot")
}

func TestNormalizeFrontFields(t *testing.T) {
	p := Normalize(&airtable.Record{
		ID: "recFront",
		Fields: map[string]interface{}{
			"category":          "Front frezowany",
			"front_typ":         "gładki",
			"frez_typ":          "J",
			"kolor":             "biały",
			"info":              "na wymiar",
			"czas_oczekiwania":  "14 dni",
			"cena_brutto":       "PLN 350,00",
			"cena_brutto_laser": float64(410),
		},
	})

	require.NotNil(t, p.Front)
	assert.Equal(t, "gładki", p.Front.FrontType)
	assert.Equal(t, "J", p.Front.MillingType)
	assert.Equal(t, "14 dni", p.Front.LeadTime)
	require.NotNil(t, p.Front.GrossPrice)
	assert.InDelta(t, 350.0, *p.Front.GrossPrice, 1e-9)
	require.NotNil(t, p.Front.GrossPriceLaser)
	assert.InDelta(t, 410.0, *p.Front.GrossPriceLaser, 1e-9)

	assert.Equal(t, domain.ModeFront, p.DisplayMode(true))
	assert.Equal(t, domain.ModeGeneric, p.DisplayMode(false))
}

func fptr(f float64) *float64 { return &f }
