package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickdash/storefront/internal/common"
	"github.com/quickdash/storefront/internal/obs"
)

// Handler wires the catalog pipeline to HTTP.
type Handler struct {
	Provider     *StaticProvider
	FallbackSize int
}

// List runs the query pipeline over the full catalog.
// GET /api/v1/products?category=&q=&sort=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Provider == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "catalog provider not configured", nil)
		return
	}
	values := r.URL.Query()
	query := Query{
		Category: values.Get("category"),
		Search:   values.Get("q"),
		Sort:     NormalizeSort(values.Get("sort")),
	}
	result := Run(h.Provider.Products(), query, h.FallbackSize)
	if obs.CatalogQueryTotal != nil {
		obs.CatalogQueryTotal.WithLabelValues(string(result.Outcome)).Inc()
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": result.Products,
		"meta": map[string]any{
			"outcome": result.Outcome,
			"total":   len(result.Products),
			"sort":    query.Sort,
		},
	})
}

// Detail resolves a single product by slug.
// GET /api/v1/products/{slug}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	if h.Provider == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "catalog provider not configured", nil)
		return
	}
	product, err := h.Provider.ProductBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": product})
}

// Categories returns the taxonomy with display visuals.
// GET /api/v1/categories
func (h *Handler) Categories(w http.ResponseWriter, _ *http.Request) {
	if h.Provider == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "catalog provider not configured", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Provider.Categories()})
}
