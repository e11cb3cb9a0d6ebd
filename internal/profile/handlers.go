package profile

import (
	"net/http"

	"github.com/quickdash/storefront/internal/common"
	"github.com/quickdash/storefront/internal/order"
)

// Handler serves the profile shell together with the order history.
type Handler struct {
	Orders *order.Store
}

// Get returns the mock account, its navigation sections and placed orders
// newest first.
func (h *Handler) Get(w http.ResponseWriter, _ *http.Request) {
	var orders []*order.Order
	if h.Orders != nil {
		orders = h.Orders.List()
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"user":     MockUser(),
			"sections": Sections(),
			"orders":   orders,
		},
	})
}
