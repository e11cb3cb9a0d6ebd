package cart

import (
	"github.com/quickdash/storefront/internal/pricing"
)

// LineItem is one product entry in the cart with its chosen quantity.
// Items are owned exclusively by the cart: created on add, quantity mutated
// by update requests, destroyed on removal or clear.
type LineItem struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"productId"`
	Slug       string            `json:"slug"`
	Name       string            `json:"name"`
	UnitPrice  float64           `json:"unitPrice"`
	Quantity   int               `json:"quantity"`
	StockLimit int               `json:"stockLimit"`
	ImageURL   string            `json:"imageUrl,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Cart holds items in insertion order plus the applied promotion. The
// discount is never stored independently of its inputs: it is recomputed from
// the current items and promo code on every mutation.
type Cart struct {
	ID        string
	Items     []LineItem
	PromoCode string
	Discount  float64
}

// View is the derived state handed to the presentation layer after every
// operation: the committed items plus totals that reflect them.
type View struct {
	ID        string          `json:"id"`
	Items     []LineItem      `json:"items"`
	PromoCode string          `json:"promoCode,omitempty"`
	Summary   pricing.Summary `json:"summary"`
}

func pricingItems(items []LineItem) []pricing.Item {
	out := make([]pricing.Item, 0, len(items))
	for _, it := range items {
		out = append(out, pricing.Item{Qty: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return out
}
