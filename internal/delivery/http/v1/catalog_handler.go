package v1

import (
	"context"
	"errors"
	"net/http"

	"azm-catalog-backend/internal/domain"
	"azm-catalog-backend/internal/usecase"
	"azm-catalog-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
	calcUC    *usecase.CalculatorUsecase
}

func NewCatalogHandler(catalogUC *usecase.CatalogUsecase, calcUC *usecase.CalculatorUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC, calcUC: calcUC}
}

// GetProduct serves GET /api/v1/product/{id}?table=...
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	h.serveProduct(w, r, domain.FlavorCatalog)
}

// GetFrontProduct serves GET /api/v1/product/front/{id}?table=...
func (h *CatalogHandler) GetFrontProduct(w http.ResponseWriter, r *http.Request) {
	h.serveProduct(w, r, domain.FlavorFront)
}

func (h *CatalogHandler) serveProduct(w http.ResponseWriter, r *http.Request, flavor domain.Flavor) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, domain.ErrMissingID.Error())
		return
	}
	tableHint := r.URL.Query().Get("table")

	pw, err := h.catalogUC.GetProduct(r.Context(), id, flavor, tableHint)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	mode := pw.Product.DisplayMode(flavor == domain.FlavorFront)
	utils.WriteJSON(w, http.StatusOK, NewProductView(pw, mode, h.calcUC))
}

// QuoteWorktop serves POST /api/v1/product/{id}/quote. The body carries the
// client's current selections; the response returns them legalized together
// with the derived option sets and price.
func (h *CatalogHandler) QuoteWorktop(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, domain.ErrMissingID.Error())
		return
	}

	var req usecase.Selections
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Invalid selections payload")
			return
		}
	}

	pw, err := h.catalogUC.GetProduct(r.Context(), id, domain.FlavorCatalog, r.URL.Query().Get("table"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	if !pw.Product.IsWorktop() {
		utils.WriteError(w, http.StatusBadRequest, "Price calculator is only available for worktops")
		return
	}

	utils.WriteJSON(w, http.StatusOK, h.calcUC.State(pw, req))
}

// SearchByCode serves GET /api/v1/products/code/{code}. Family codes are not
// unique, so this may return several thickness variants.
func (h *CatalogHandler) SearchByCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product code required")
		return
	}

	flavor := domain.FlavorCatalog
	if r.URL.Query().Get("flavor") == string(domain.FlavorFront) {
		flavor = domain.FlavorFront
	}

	products, err := h.catalogUC.FindByCode(r.Context(), code, flavor)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":  products,
		"count": len(products),
	})
}

func writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingID):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled):
		// client went away, nothing useful to write
	default:
		utils.WriteError(w, http.StatusBadGateway, "Upstream catalog lookup failed")
	}
}
