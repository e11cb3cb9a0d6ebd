package order

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quickdash/storefront/internal/cart"
	"github.com/quickdash/storefront/internal/common"
	"github.com/quickdash/storefront/internal/pricing"
)

// Address is the delivery destination captured at checkout.
type Address struct {
	FullName    string `json:"fullName"`
	AddressLine string `json:"addressLine1"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Phone       string `json:"phone"`
}

// Order is a placed order snapshot. Items and totals are frozen at checkout
// time; only Status advances afterwards.
type Order struct {
	ID            string          `json:"id"`
	Status        Status          `json:"status"`
	Items         []cart.LineItem `json:"items"`
	Summary       pricing.Summary `json:"summary"`
	PromoCode     string          `json:"promoCode,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	Address       Address         `json:"address"`
	PlacedAt      time.Time       `json:"placedAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Store holds placed orders in memory keyed by id.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*Order
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{orders: make(map[string]*Order), now: time.Now}
}

func (s *Store) Insert(o *Order) *Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	now := s.now().UTC()
	o.PlacedAt = now
	o.UpdatedAt = now
	cp := *o
	s.orders[o.ID] = &cp
	snap := cp
	return &snap
}

func (s *Store) Get(id string) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, common.NewNotFound("order not found", nil)
	}
	snap := *o
	return &snap, nil
}

// List returns all orders, newest first. Backs the order history view.
func (s *Store) List() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0, len(s.orders))
	for _, o := range s.orders {
		snap := *o
		out = append(out, &snap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out
}

// Advance moves an order to the next stage and returns the updated snapshot.
// Delivered orders stay delivered.
func (s *Store) Advance(id string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, common.NewNotFound("order not found", nil)
	}
	next, err := o.Status.Next()
	if err != nil {
		return nil, err
	}
	o.Status = next
	o.UpdatedAt = s.now().UTC()
	snap := *o
	return &snap, nil
}
