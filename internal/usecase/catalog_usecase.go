package usecase

import (
	"context"

	"azm-catalog-backend/internal/domain"
	"azm-catalog-backend/pkg/logger"
)

type CatalogUsecase struct {
	repo        domain.ProductRepository
	searchLimit int
}

func NewCatalogUsecase(repo domain.ProductRepository, searchLimit int) *CatalogUsecase {
	return &CatalogUsecase{
		repo:        repo,
		searchLimit: searchLimit,
	}
}

// GetProduct locates the primary record and, for worktops, resolves its
// thickness variants.
func (uc *CatalogUsecase) GetProduct(ctx context.Context, id string, flavor domain.Flavor, tableHint string) (*domain.ProductWithVariants, error) {
	primary, err := uc.repo.Locate(ctx, id, flavor, tableHint)
	if err != nil {
		return nil, err
	}

	pw := &domain.ProductWithVariants{Product: *primary}
	if primary.IsWorktop() {
		pw.ThicknessVariants = uc.resolveThicknessVariants(ctx, primary, flavor)
	}
	return pw, nil
}

// resolveThicknessVariants follows the record's calculator links. It always
// succeeds: an unresolvable link, the primary's own id, and same-thickness
// duplicates are dropped rather than escalated.
func (uc *CatalogUsecase) resolveThicknessVariants(ctx context.Context, primary *domain.Product, flavor domain.Flavor) []domain.Product {
	var out []domain.Product
	for _, linkedID := range primary.LinkedIDs {
		if ctx.Err() != nil {
			break
		}
		if linkedID == primary.ID {
			continue
		}
		variant, err := uc.repo.Locate(ctx, linkedID, flavor, "")
		if err != nil {
			logger.Debug().Err(err).Str("linked_id", linkedID).Str("primary_id", primary.ID).Msg("Thickness variant skipped")
			continue
		}
		if variant.Thickness == primary.Thickness {
			continue
		}
		out = append(out, *variant)
	}
	return out
}

// FindByCode searches the flavor's tables for records sharing a family code.
func (uc *CatalogUsecase) FindByCode(ctx context.Context, code string, flavor domain.Flavor) ([]domain.Product, error) {
	return uc.repo.FindByCode(ctx, code, flavor, uc.searchLimit)
}
