package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/quickdash/storefront/internal/catalog"
)

type productsResponse struct {
	Data []catalog.Product `json:"data"`
	Meta struct {
		Outcome string `json:"outcome"`
		Total   int    `json:"total"`
		Sort    string `json:"sort"`
	} `json:"meta"`
}

type productDetailResponse struct {
	Data catalog.Product `json:"data"`
}

type categoriesResponse struct {
	Data []catalog.Category `json:"data"`
}

func newCatalogRouter(t *testing.T) *chi.Mux {
	t.Helper()
	provider, err := catalog.NewStaticProvider()
	require.NoError(t, err)
	handler := &catalog.Handler{Provider: provider, FallbackSize: 4}

	r := chi.NewRouter()
	r.Get("/api/v1/products", handler.List)
	r.Get("/api/v1/products/{slug}", handler.Detail)
	r.Get("/api/v1/categories", handler.Categories)
	return r
}

func TestListAllProducts(t *testing.T) {
	r := newCatalogRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 10)
	require.Equal(t, "ok", resp.Meta.Outcome)
	require.Equal(t, 10, resp.Meta.Total)
	require.Equal(t, "relevance", resp.Meta.Sort)
}

func TestListSearchNarrows(t *testing.T) {
	r := newCatalogRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?q=avocado", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.Equal(t, "fresh-avocado", resp.Data[0].Slug)
}

func TestListUnmatchedCategoryFallsBack(t *testing.T) {
	r := newCatalogRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?category=electronics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "fallback", resp.Meta.Outcome)
	require.Len(t, resp.Data, 4)
}

func TestListSortByPrice(t *testing.T) {
	r := newCatalogRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price-asc", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "price-asc", resp.Meta.Sort)
	for i := 1; i < len(resp.Data); i++ {
		require.LessOrEqual(t, resp.Data[i-1].Price, resp.Data[i].Price)
	}
}

func TestDetailKnownAndUnknownSlug(t *testing.T) {
	r := newCatalogRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/fresh-avocado", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var detail productDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Equal(t, "Fresh Avocado", detail.Data.Name)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products/no-such-item", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesIncludeVisuals(t *testing.T) {
	r := newCatalogRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp categoriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data)
	for _, c := range resp.Data {
		require.NotEmpty(t, c.Slug)
		require.Contains(t, []catalog.VisualKind{catalog.VisualIcon, catalog.VisualImage, catalog.VisualNone}, c.Visual.Kind)
	}
}
