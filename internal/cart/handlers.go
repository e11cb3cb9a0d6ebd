package cart

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quickdash/storefront/internal/catalog"
	"github.com/quickdash/storefront/internal/common"
	"github.com/quickdash/storefront/internal/events"
	"github.com/quickdash/storefront/internal/obs"
	"github.com/quickdash/storefront/internal/promo"
)

// Handler wires the cart service to HTTP. The catalog provider resolves
// product slugs on add; the event bus carries outcome classifications to the
// notification channel.
type Handler struct {
	Svc     *Service
	Catalog *catalog.StaticProvider
	Events  *events.Bus
}

// Create allocates a cart.
func (h *Handler) Create(w http.ResponseWriter, _ *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart service not configured", nil)
		return
	}
	view := h.Svc.Create()
	countOp("create")
	common.JSON(w, http.StatusCreated, map[string]any{"data": view})
}

// Get returns cart contents and the derived pricing summary.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart service not configured", nil)
		return
	}
	view, err := h.Svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// AddItem resolves the product by slug and inserts or increments a line.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Catalog == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart dependencies not configured", nil)
		return
	}
	var payload struct {
		Slug     string `json:"slug"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body", nil)
		return
	}
	product, err := h.Catalog.ProductBySlug(payload.Slug)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	qty := payload.Quantity
	if qty == 0 {
		qty = 1
	}
	view, err := h.Svc.AddItem(chi.URLParam(r, "id"), AddInput{
		ProductID:  product.ID,
		Slug:       product.Slug,
		Name:       product.Name,
		UnitPrice:  product.Price,
		ImageURL:   product.ImageURL,
		Quantity:   qty,
		Attributes: map[string]string{"Unit": product.Unit},
	})
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	countOp("add_item")
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// UpdateQuantity sets a line item's quantity within 1..stockLimit.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart service not configured", nil)
		return
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body", nil)
		return
	}
	view, err := h.Svc.UpdateQuantity(chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), payload.Quantity)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	countOp("update_quantity")
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// RemoveItem deletes a line item.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart service not configured", nil)
		return
	}
	cartID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemId")
	view, err := h.Svc.RemoveItem(cartID, itemID)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	countOp("remove_item")
	_ = h.Events.Emit(r.Context(), events.TopicItemRemoved, map[string]string{"cartId": cartID, "itemId": itemID})
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// Clear empties the cart and resets the applied promotion with it.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart service not configured", nil)
		return
	}
	cartID := chi.URLParam(r, "id")
	view, err := h.Svc.Clear(cartID)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	countOp("clear")
	_ = h.Events.Emit(r.Context(), events.TopicCartCleared, map[string]string{"cartId": cartID})
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

// ApplyPromo validates the submitted code. Blank and unrecognised codes are
// distinct outcomes; both reset the discount and neither is an HTTP error.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart service not configured", nil)
		return
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, common.CodeValidation, "invalid request body", nil)
		return
	}
	cartID := chi.URLParam(r, "id")
	result, view, err := h.Svc.ApplyPromo(cartID, payload.Code)
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	if obs.PromoApplyTotal != nil {
		obs.PromoApplyTotal.WithLabelValues(string(result.Outcome)).Inc()
	}
	topic := events.TopicPromoApplied
	if result.Outcome != promo.OutcomeApplied {
		topic = events.TopicPromoRejected
	}
	_ = h.Events.Emit(r.Context(), topic, map[string]any{
		"cartId":  cartID,
		"outcome": result.Outcome,
		"code":    strings.TrimSpace(payload.Code),
	})
	common.JSON(w, http.StatusOK, map[string]any{
		"data": view,
		"meta": map[string]any{"outcome": result.Outcome},
	})
}

// RemovePromo clears an applied code.
func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "cart service not configured", nil)
		return
	}
	view, err := h.Svc.RemovePromo(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONAppError(w, err)
		return
	}
	countOp("remove_promo")
	common.JSON(w, http.StatusOK, map[string]any{"data": view})
}

func countOp(op string) {
	if obs.CartOpsTotal != nil {
		obs.CartOpsTotal.WithLabelValues(op).Inc()
	}
}
