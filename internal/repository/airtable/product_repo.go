package airtable

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"azm-catalog-backend/internal/domain"
	"azm-catalog-backend/internal/infrastructure/airtable"
	"azm-catalog-backend/pkg/cache"
	"azm-catalog-backend/pkg/logger"
)

// ProductRepo implements domain.ProductRepository on top of the Airtable
// client. Which table owns a record id is not known in advance, so lookups run
// a hint → cache → exhaustive-scan pipeline; successful hits from the hint or
// the scan refresh a TTL-bounded id→table mapping.
type ProductRepo struct {
	client      *airtable.Client
	locations   cache.CacheService
	tables      map[domain.Flavor][]string
	locationTTL time.Duration
}

func NewProductRepository(client *airtable.Client, locations cache.CacheService, catalogTables, frontTables []string, locationTTL time.Duration) *ProductRepo {
	return &ProductRepo{
		client:    client,
		locations: locations,
		tables: map[domain.Flavor][]string{
			domain.FlavorCatalog: catalogTables,
			domain.FlavorFront:   frontTables,
		},
		locationTTL: locationTTL,
	}
}

func locationKey(id string) string {
	return "tableloc:" + id
}

func (r *ProductRepo) tablesFor(flavor domain.Flavor) []string {
	if t, ok := r.tables[flavor]; ok {
		return t
	}
	return r.tables[domain.FlavorCatalog]
}

// Locate resolves which table holds the record and returns it normalized.
func (r *ProductRepo) Locate(ctx context.Context, id string, flavor domain.Flavor, tableHint string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrMissingID
	}
	tables := r.tablesFor(flavor)

	// (a) navigation hint, honored only when it names a legal table
	if tableHint != "" && slices.Contains(tables, tableHint) {
		if rec, ok := r.probe(ctx, tableHint, id); ok {
			r.remember(id, tableHint, flavor)
			p := Normalize(rec)
			return &p, nil
		}
	}

	// (b) unexpired cached mapping; a fetch miss purges the stale entry
	if table, ok := r.cachedTable(id); ok {
		if rec, ok := r.probe(ctx, table, id); ok {
			p := Normalize(rec)
			return &p, nil
		}
		r.locations.Delete(locationKey(id))
	}

	// (c) exhaustive scan, first affirmative table wins
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec, ok := r.probe(ctx, table, id); ok {
			r.remember(id, table, flavor)
			p := Normalize(rec)
			return &p, nil
		}
	}

	return nil, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
}

// FindByCode collects records sharing a family code across the flavor's
// tables. A failing table is skipped, not escalated.
func (r *ProductRepo) FindByCode(ctx context.Context, code string, flavor domain.Flavor, limit int) ([]domain.Product, error) {
	var out []domain.Product
	for _, table := range r.tablesFor(flavor) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		remaining := 0
		if limit > 0 {
			remaining = limit - len(out)
			if remaining <= 0 {
				break
			}
		}
		recs, err := r.client.Select(ctx, table, airtable.CodeFormula(code), remaining)
		if err != nil {
			logger.Debug().Err(err).Str("table", table).Str("code", code).Msg("Code search skipped table")
			continue
		}
		for i := range recs {
			out = append(out, Normalize(&recs[i]))
		}
	}
	return out, nil
}

// probe treats any failure, transport or HTTP, as a negative answer for that
// table only.
func (r *ProductRepo) probe(ctx context.Context, table, id string) (*airtable.Record, bool) {
	start := time.Now()
	rec, err := r.client.Record(ctx, table, id)
	logger.TableProbe(table, id, err == nil, time.Since(start))
	if err != nil {
		return nil, false
	}
	return rec, true
}

// remember refreshes the id→table mapping. Front lookups are never cached.
func (r *ProductRepo) remember(id, table string, flavor domain.Flavor) {
	if flavor == domain.FlavorFront {
		return
	}
	r.locations.Set(locationKey(id), table, r.locationTTL)
}

func (r *ProductRepo) cachedTable(id string) (string, bool) {
	v, found := r.locations.Get(locationKey(id))
	if !found {
		return "", false
	}
	table, ok := v.(string)
	return table, ok && table != ""
}
