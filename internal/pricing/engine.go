package pricing

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       int
	UnitPrice float64
}

// Summary aggregates computed pricing components. Amounts are unrounded;
// rounding to display precision belongs to the presentation layer.
type Summary struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Discount    float64 `json:"discount"`
	GrandTotal  float64 `json:"grandTotal"`
}

// Subtotal sums unitPrice*qty over all items using compensated (Kahan)
// accumulation so long carts do not drift. Returns 0 for an empty list.
// Lines with non-positive quantity contribute nothing.
func Subtotal(items []Item) float64 {
	var sum, comp float64
	for _, it := range items {
		if it.Qty <= 0 || it.UnitPrice < 0 {
			continue
		}
		y := it.UnitPrice*float64(it.Qty) - comp
		t := sum + y
		comp = (t - sum) - y
		sum = t
	}
	return sum
}

// GrandTotal computes subtotal + deliveryFee - discount. The discount is
// clamped to [0, subtotal], so the result never drops below the delivery fee.
func GrandTotal(subtotal, deliveryFee, discount float64) float64 {
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return subtotal + deliveryFee - discount
}

// Summarize derives all monetary totals for a cart in one pass.
func Summarize(items []Item, deliveryFee, discount float64) Summary {
	subtotal := Subtotal(items)
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	return Summary{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		GrandTotal:  subtotal + deliveryFee - discount,
	}
}
