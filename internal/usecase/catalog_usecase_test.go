package usecase

import (
	"context"
	"fmt"
	"testing"

	"azm-catalog-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductRepo serves fixtures by id and records every Locate call.
type mockProductRepo struct {
	products    map[string]domain.Product
	locateCalls []string
}

func (m *mockProductRepo) Locate(ctx context.Context, id string, flavor domain.Flavor, tableHint string) (*domain.Product, error) {
	m.locateCalls = append(m.locateCalls, id)
	if p, ok := m.products[id]; ok {
		return &p, nil
	}
	return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
}

func (m *mockProductRepo) FindByCode(ctx context.Context, code string, flavor domain.Flavor, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range m.products {
		if p.Code == code {
			out = append(out, p)
		}
	}
	return out, nil
}

func worktop(id string, thickness int, linked ...string) domain.Product {
	return domain.Product{
		ID:        id,
		Code:      "FAM1",
		Category:  "blat",
		Thickness: thickness,
		LinkedIDs: linked,
	}
}

func TestGetProductResolvesWorktopVariants(t *testing.T) {
	repo := &mockProductRepo{products: map[string]domain.Product{
		"recMain":  worktop("recMain", 38, "recMain", "rec28", "recDup38", "recGone", "rec18"),
		"rec28":    worktop("rec28", 28),
		"recDup38": worktop("recDup38", 38), // same thickness, not a variant
		"rec18":    worktop("rec18", 18),
	}}
	uc := NewCatalogUsecase(repo, 20)

	pw, err := uc.GetProduct(context.Background(), "recMain", domain.FlavorCatalog, "")
	require.NoError(t, err)

	require.Len(t, pw.ThicknessVariants, 2)
	ids := []string{pw.ThicknessVariants[0].ID, pw.ThicknessVariants[1].ID}
	assert.Equal(t, []string{"rec28", "rec18"}, ids, "link order is preserved")

	assert.NotContains(t, ids, "recMain", "the primary's own id is never a variant")
	assert.NotContains(t, ids, "recDup38", "same-thickness siblings are dropped")
	assert.NotContains(t, ids, "recGone", "unresolvable links are skipped")

	assert.Equal(t, []int{18, 28, 38}, pw.ThicknessOptions())
}

func TestGetProductVariantFailuresNeverEscalate(t *testing.T) {
	repo := &mockProductRepo{products: map[string]domain.Product{
		"recMain": worktop("recMain", 38, "recGone1", "recGone2"),
	}}
	uc := NewCatalogUsecase(repo, 20)

	pw, err := uc.GetProduct(context.Background(), "recMain", domain.FlavorCatalog, "")
	require.NoError(t, err, "a page-level error must not come from variant lookups")
	assert.Empty(t, pw.ThicknessVariants)
}

func TestGetProductSkipsVariantsForNonWorktops(t *testing.T) {
	repo := &mockProductRepo{products: map[string]domain.Product{
		"recPanel": {ID: "recPanel", Category: "Płyta", LinkedIDs: []string{"recOther"}},
	}}
	uc := NewCatalogUsecase(repo, 20)

	pw, err := uc.GetProduct(context.Background(), "recPanel", domain.FlavorCatalog, "")
	require.NoError(t, err)
	assert.Empty(t, pw.ThicknessVariants)
	assert.Equal(t, []string{"recPanel"}, repo.locateCalls, "links must not be followed for panels")
	assert.Equal(t, domain.ModePanel, pw.Product.DisplayMode(false))
}

func TestGetProductPropagatesNotFound(t *testing.T) {
	repo := &mockProductRepo{products: map[string]domain.Product{}}
	uc := NewCatalogUsecase(repo, 20)

	_, err := uc.GetProduct(context.Background(), "recNope", domain.FlavorCatalog, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
