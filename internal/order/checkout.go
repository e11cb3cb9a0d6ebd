package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/quickdash/storefront/internal/cart"
	"github.com/quickdash/storefront/internal/common"
	"github.com/quickdash/storefront/internal/events"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutInput carries the delivery and payment details collected at
// checkout. Card and UPI fields are only required for their method.
type CheckoutInput struct {
	CartID        string `json:"cartId" validate:"required"`
	FullName      string `json:"fullName" validate:"required,min=2"`
	AddressLine   string `json:"addressLine1" validate:"required,min=5"`
	City          string `json:"city" validate:"required,min=2"`
	PostalCode    string `json:"postalCode" validate:"required,postal_code"`
	Phone         string `json:"phone" validate:"required,e164ish"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cod card upi"`
	CardNumber    string `json:"cardNumber,omitempty" validate:"required_if=PaymentMethod card,omitempty,card_number"`
	CardExpiry    string `json:"cardExpiry,omitempty" validate:"required_if=PaymentMethod card,omitempty,card_expiry"`
	CardCVC       string `json:"cardCvc,omitempty" validate:"required_if=PaymentMethod card,omitempty,card_cvc"`
	UPIID         string `json:"upiId,omitempty" validate:"required_if=PaymentMethod upi,omitempty,upi_id"`
}

var (
	rePostal     = regexp.MustCompile(`^\d{5,6}$`)
	rePhone      = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	reCardNumber = regexp.MustCompile(`^\d{13,19}$`)
	reCardExpiry = regexp.MustCompile(`^(0[1-9]|1[0-2])\/\d{2}$`)
	reCardCVC    = regexp.MustCompile(`^\d{3,4}$`)
	reUPI        = regexp.MustCompile(`^[\w.\-]{2,}@[a-zA-Z]{2,}$`)
)

func newCheckoutValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	regex := func(tag string, re *regexp.Regexp) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		})
	}
	regex("postal_code", rePostal)
	regex("e164ish", rePhone)
	regex("card_number", reCardNumber)
	regex("card_expiry", reCardExpiry)
	regex("card_cvc", reCardCVC)
	regex("upi_id", reUPI)
	return v
}

// Service places orders from carts and reads them back with stage progress.
type Service struct {
	Carts    *cart.Service
	Orders   *Store
	Events   *events.Bus
	Log      zerolog.Logger
	validate *validator.Validate
}

func NewService(carts *cart.Service, orders *Store, bus *events.Bus) *Service {
	return &Service{
		Carts:    carts,
		Orders:   orders,
		Events:   bus,
		Log:      zerolog.Nop(),
		validate: newCheckoutValidator(),
	}
}

// Checkout validates the input, drains the cart into a frozen order snapshot
// and emits an order-placed event. The cart is left empty on success.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*Order, error) {
	in.PaymentMethod = strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
			appErr := common.NewValidation("invalid checkout details", err)
			appErr.Details = details
			return nil, appErr
		}
		return nil, fmt.Errorf("validate checkout: %w", err)
	}

	items, summary, promoCode, err := s.Carts.Drain(in.CartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.NewValidation("cart is empty", ErrEmptyCart)
	}

	o := s.Orders.Insert(&Order{
		Status:        StatusPlaced,
		Items:         items,
		Summary:       summary,
		PromoCode:     promoCode,
		PaymentMethod: in.PaymentMethod,
		Address: Address{
			FullName:    strings.TrimSpace(in.FullName),
			AddressLine: strings.TrimSpace(in.AddressLine),
			City:        strings.TrimSpace(in.City),
			PostalCode:  in.PostalCode,
			Phone:       in.Phone,
		},
	})

	// The order is committed and the cart drained; a broken notifier must
	// not turn a placed order into a client-visible failure.
	if err := s.Events.Emit(ctx, events.TopicOrderPlaced, map[string]any{
		"order_id":    o.ID,
		"grand_total": o.Summary.GrandTotal,
		"items":       len(o.Items),
	}); err != nil {
		s.Log.Error().Err(err).Str("order_id", o.ID).Msg("order placed event delivery failed")
	}
	return o, nil
}

// Advance moves an order one stage forward and emits an order-advanced event.
func (s *Service) Advance(ctx context.Context, id string) (*Order, error) {
	o, err := s.Orders.Advance(id)
	if err != nil {
		return nil, err
	}
	if err := s.Events.Emit(ctx, events.TopicOrderAdvanced, map[string]any{
		"order_id": o.ID,
		"status":   string(o.Status),
	}); err != nil {
		s.Log.Error().Err(err).Str("order_id", o.ID).Msg("order advanced event delivery failed")
	}
	return o, nil
}
