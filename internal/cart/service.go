package cart

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/quickdash/storefront/internal/common"
	"github.com/quickdash/storefront/internal/pricing"
	"github.com/quickdash/storefront/internal/promo"
)

// ErrNotFound indicates the requested cart could not be located.
var ErrNotFound = errors.New("cart not found")

// ErrItemNotFound indicates the referenced line item is absent from the cart.
var ErrItemNotFound = errors.New("cart item not found")

// ErrInvalidQuantity is returned when a quantity falls outside 1..stockLimit.
var ErrInvalidQuantity = errors.New("quantity out of bounds")

// Service owns all cart state in memory and keeps derived totals consistent:
// every mutation recomputes the summary (and re-validates any applied promo
// code against the new subtotal) before the result is returned.
type Service struct {
	Rules             promo.RuleSet
	DeliveryFee       float64
	StockLimitDefault int

	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewService constructs the in-memory cart service.
func NewService(rules promo.RuleSet, deliveryFee float64, stockLimitDefault int) *Service {
	if stockLimitDefault < 1 {
		stockLimitDefault = 10
	}
	return &Service{
		Rules:             rules,
		DeliveryFee:       deliveryFee,
		StockLimitDefault: stockLimitDefault,
		carts:             make(map[string]*Cart),
	}
}

// AddInput describes the product being added; the caller resolves it from
// the catalog so the cart never consults the provider itself.
type AddInput struct {
	ProductID  string
	Slug       string
	Name       string
	UnitPrice  float64
	ImageURL   string
	Quantity   int
	StockLimit int
	Attributes map[string]string
}

// Create allocates an empty cart and returns its derived view.
func (s *Service) Create() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &Cart{ID: uuid.NewString()}
	s.carts[c.ID] = c
	return s.view(c)
}

// Get returns the current derived view for a cart.
func (s *Service) Get(cartID string) (View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.find(cartID)
	if err != nil {
		return View{}, err
	}
	return s.view(c), nil
}

// AddItem inserts a new line or increments an existing one for the same
// product, clamped at the item's stock limit.
func (s *Service) AddItem(cartID string, in AddInput) (View, error) {
	if in.Quantity < 1 {
		return View{}, common.NewValidation("quantity must be at least 1", ErrInvalidQuantity)
	}
	if in.UnitPrice < 0 {
		return View{}, common.NewValidation("unit price must not be negative", fmt.Errorf("unit price %v", in.UnitPrice))
	}
	limit := in.StockLimit
	if limit < 1 {
		limit = s.StockLimitDefault
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.find(cartID)
	if err != nil {
		return View{}, err
	}

	for i := range c.Items {
		if c.Items[i].ProductID == in.ProductID {
			next := c.Items[i].Quantity + in.Quantity
			if next > c.Items[i].StockLimit {
				next = c.Items[i].StockLimit
			}
			c.Items[i].Quantity = next
			s.recompute(c)
			return s.view(c), nil
		}
	}

	qty := in.Quantity
	if qty > limit {
		qty = limit
	}
	c.Items = append(c.Items, LineItem{
		ID:         uuid.NewString(),
		ProductID:  in.ProductID,
		Slug:       in.Slug,
		Name:       in.Name,
		UnitPrice:  in.UnitPrice,
		Quantity:   qty,
		StockLimit: limit,
		ImageURL:   in.ImageURL,
		Attributes: in.Attributes,
	})
	s.recompute(c)
	return s.view(c), nil
}

// UpdateQuantity sets a line item's quantity. Zero is rejected rather than
// treated as removal; RemoveItem is the explicit operation for that.
func (s *Service) UpdateQuantity(cartID, itemID string, quantity int) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.find(cartID)
	if err != nil {
		return View{}, err
	}
	for i := range c.Items {
		if c.Items[i].ID != itemID {
			continue
		}
		if quantity < 1 || quantity > c.Items[i].StockLimit {
			return View{}, common.NewValidation(
				fmt.Sprintf("quantity must be between 1 and %d", c.Items[i].StockLimit),
				ErrInvalidQuantity,
			)
		}
		c.Items[i].Quantity = quantity
		s.recompute(c)
		return s.view(c), nil
	}
	return View{}, common.NewNotFound("cart item not found", ErrItemNotFound)
}

// RemoveItem deletes the matching line item.
func (s *Service) RemoveItem(cartID, itemID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.find(cartID)
	if err != nil {
		return View{}, err
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			s.recompute(c)
			return s.view(c), nil
		}
	}
	return View{}, common.NewNotFound("cart item not found", ErrItemNotFound)
}

// Clear empties the cart. The promo code and discount are coupled to the
// items and reset with them.
func (s *Service) Clear(cartID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.find(cartID)
	if err != nil {
		return View{}, err
	}
	c.Items = nil
	c.PromoCode = ""
	c.Discount = 0
	return s.view(c), nil
}

// ApplyPromo validates the code against the rule set and stores the result.
// The returned promo.Result classifies the outcome for the notification
// channel even when the code is rejected; a rejected code clears any
// previously applied discount.
func (s *Service) ApplyPromo(cartID, code string) (promo.Result, View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.find(cartID)
	if err != nil {
		return promo.Result{}, View{}, err
	}
	subtotal := pricing.Subtotal(pricingItems(c.Items))
	result, applyErr := promo.Apply(s.Rules, subtotal, code)
	if applyErr != nil {
		c.PromoCode = ""
		c.Discount = 0
		return result, s.view(c), nil
	}
	c.PromoCode = result.Code
	c.Discount = result.Discount
	return result, s.view(c), nil
}

// RemovePromo clears an applied code.
func (s *Service) RemovePromo(cartID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.find(cartID)
	if err != nil {
		return View{}, err
	}
	c.PromoCode = ""
	c.Discount = 0
	return s.view(c), nil
}

// Drain empties the cart and returns the items and summary it held, for
// checkout to turn into an order.
func (s *Service) Drain(cartID string) ([]LineItem, pricing.Summary, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.find(cartID)
	if err != nil {
		return nil, pricing.Summary{}, "", err
	}
	items := append([]LineItem(nil), c.Items...)
	summary := pricing.Summarize(pricingItems(c.Items), s.DeliveryFee, c.Discount)
	promoCode := c.PromoCode
	c.Items = nil
	c.PromoCode = ""
	c.Discount = 0
	return items, summary, promoCode, nil
}

func (s *Service) find(cartID string) (*Cart, error) {
	c, ok := s.carts[strings.TrimSpace(cartID)]
	if !ok {
		return nil, common.NewNotFound("cart not found", ErrNotFound)
	}
	return c, nil
}

// recompute re-derives the discount from the current items. An applied code
// that no longer validates (for example against an emptied cart) is dropped
// so the discount can never track a stale subtotal.
func (s *Service) recompute(c *Cart) {
	if c.PromoCode == "" {
		c.Discount = 0
		return
	}
	subtotal := pricing.Subtotal(pricingItems(c.Items))
	result, err := promo.Apply(s.Rules, subtotal, c.PromoCode)
	if err != nil {
		c.PromoCode = ""
		c.Discount = 0
		return
	}
	c.Discount = result.Discount
}

func (s *Service) view(c *Cart) View {
	items := append([]LineItem(nil), c.Items...)
	return View{
		ID:        c.ID,
		Items:     items,
		PromoCode: c.PromoCode,
		Summary:   pricing.Summarize(pricingItems(items), s.DeliveryFee, c.Discount),
	}
}
