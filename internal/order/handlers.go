package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickdash/storefront/internal/common"
	"github.com/quickdash/storefront/internal/obs"
)

// Handler exposes checkout and order tracking over HTTP.
type Handler struct {
	Svc *Service
}

// Checkout places an order from the submitted cart and delivery details.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	var in CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body", nil)
		return
	}
	o, err := h.Svc.Checkout(r.Context(), in)
	if err != nil {
		countCheckout("rejected")
		common.JSONAppError(w, err)
		return
	}
	countCheckout("placed")
	common.JSON(w, http.StatusCreated, map[string]any{"data": h.withProgress(o)})
}

// Get returns a single order with its stage progression.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	o, err := h.Svc.Orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.withProgress(o)})
}

// List returns placed orders newest first.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	orders := h.Svc.Orders.List()
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, h.withProgress(o))
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": out,
		"meta": map[string]any{"total": len(out)},
	})
}

// Advance moves an order to the next fulfilment stage.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "order service not configured", nil)
		return
	}
	o, err := h.Svc.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.withProgress(o)})
}

func (h *Handler) withProgress(o *Order) map[string]any {
	progress, err := Classify(o.Status)
	if err != nil {
		progress = nil
	}
	return map[string]any{
		"order":    o,
		"progress": progress,
	}
}

func countCheckout(result string) {
	if obs.CheckoutTotal != nil {
		obs.CheckoutTotal.WithLabelValues(result).Inc()
	}
}
