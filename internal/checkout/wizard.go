// Package checkout drives the three-step checkout wizard: delivery, review
// and payment confirmation, followed by the messaging handoff.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/cart"
	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/notify"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

var (
	ErrInvalidTransition      = errors.New("action not allowed at this checkout step")
	ErrDeliveryMethodRequired = errors.New("delivery method required")
	ErrAddressIncomplete      = errors.New("street, city, department and phone are required")
)

type Step int

const (
	StepSelectingDelivery Step = iota + 1
	StepReviewingOrder
	StepConfirmingPayment
	StepCompleted
)

var stepNames = map[Step]string{
	StepSelectingDelivery: "selecting_delivery",
	StepReviewingOrder:    "reviewing_order",
	StepConfirmingPayment: "confirming_payment",
	StepCompleted:         "completed",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Step) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Step) UnmarshalText(b []byte) error {
	for step, name := range stepNames {
		if name == string(b) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown checkout step %q", b)
}

// Handoff records how the shopper left the completed screen.
type Handoff string

const (
	HandoffNone       Handoff = ""
	HandoffDispatched Handoff = "dispatched"
	HandoffDismissed  Handoff = "dismissed"
)

// State is the persisted part of a wizard.
type State struct {
	Step           Step                  `json:"step"`
	DeliveryMethod model.DeliveryMethod  `json:"delivery_method,omitempty"`
	Address        model.DeliveryAddress `json:"address"`
	AgreeTerms     bool                  `json:"agree_terms"`
	PendingOrderID uuid.UUID             `json:"pending_order_id,omitempty"`
	OrderID        uuid.UUID             `json:"order_id,omitempty"`
	OrderNumber    string                `json:"order_number,omitempty"`
	Summary        string                `json:"summary,omitempty"`
	Handoff        Handoff               `json:"handoff,omitempty"`
}

// Placer persists a placed order.
type Placer interface {
	PlaceOrder(ctx context.Context, req lifecycle.PlaceRequest, lang model.Language) (*model.Order, error)
}

type Wizard struct {
	state State
	cart  *cart.Cart
	fee   decimal.Decimal
}

func New(c *cart.Cart, fee decimal.Decimal) *Wizard {
	return Resume(c, fee, State{Step: StepSelectingDelivery})
}

// Resume continues a wizard from a previously saved state.
func Resume(c *cart.Cart, fee decimal.Decimal, s State) *Wizard {
	if s.Step == 0 {
		s.Step = StepSelectingDelivery
	}
	return &Wizard{state: s, cart: c, fee: fee}
}

func (w *Wizard) State() State { return w.state }

func (w *Wizard) Step() Step { return w.state.Step }

func (w *Wizard) SetDeliveryMethod(m model.DeliveryMethod) error {
	if w.state.Step != StepSelectingDelivery {
		return ErrInvalidTransition
	}
	if !m.Valid() {
		return lifecycle.ErrInvalidDeliveryMethod
	}
	w.state.DeliveryMethod = m
	return nil
}

func (w *Wizard) SetAddress(a model.DeliveryAddress) error {
	if w.state.Step != StepSelectingDelivery {
		return ErrInvalidTransition
	}
	w.state.Address = a
	return nil
}

// Next advances one step. Leaving delivery selection requires a method and,
// for home delivery, every address field.
func (w *Wizard) Next() error {
	switch w.state.Step {
	case StepSelectingDelivery:
		if w.cart.IsEmpty() {
			return lifecycle.ErrEmptyCart
		}
		if !w.state.DeliveryMethod.Valid() {
			return ErrDeliveryMethodRequired
		}
		if w.state.DeliveryMethod == model.DeliveryDelivery && !w.state.Address.Complete() {
			return ErrAddressIncomplete
		}
		w.state.Step = StepReviewingOrder
	case StepReviewingOrder:
		w.state.Step = StepConfirmingPayment
	default:
		return ErrInvalidTransition
	}
	return nil
}

func (w *Wizard) Back() error {
	switch w.state.Step {
	case StepReviewingOrder:
		w.state.Step = StepSelectingDelivery
	case StepConfirmingPayment:
		w.state.Step = StepReviewingOrder
	default:
		return ErrInvalidTransition
	}
	return nil
}

func (w *Wizard) AgreeTerms(agree bool) error {
	if w.state.Step != StepConfirmingPayment {
		return ErrInvalidTransition
	}
	w.state.AgreeTerms = agree
	return nil
}

// CanPlace reports whether the place-order action is enabled.
func (w *Wizard) CanPlace() bool {
	return w.state.Step == StepConfirmingPayment && w.state.AgreeTerms && !w.cart.IsEmpty()
}

// Breakdown prices the current cart with the selected method.
func (w *Wizard) Breakdown() pricing.Breakdown {
	return pricing.Compute(w.cart.Lines(), w.state.DeliveryMethod, w.fee)
}

// ReserveOrderID assigns the id the next placement stores its order under and
// reports whether it was newly assigned. The id must be persisted before
// placing so a retried placement resolves to the same order.
func (w *Wizard) ReserveOrderID() bool {
	if w.state.Step != StepConfirmingPayment || w.state.PendingOrderID != uuid.Nil {
		return false
	}
	w.state.PendingOrderID = uuid.New()
	return true
}

// Place hands the cart to placer. The cart is left intact until the
// handoff is dispatched or dismissed.
func (w *Wizard) Place(ctx context.Context, placer Placer, userID uuid.UUID, customer model.Customer, lang model.Language) (*model.Order, error) {
	if w.state.Step != StepConfirmingPayment {
		return nil, ErrInvalidTransition
	}
	req := lifecycle.PlaceRequest{
		OrderID:        w.state.PendingOrderID,
		UserID:         userID,
		Customer:       customer,
		Items:          w.cart.Items(),
		DeliveryMethod: w.state.DeliveryMethod,
		AgreeTerms:     w.state.AgreeTerms,
		DeliveryFee:    w.fee,
	}
	if w.state.DeliveryMethod == model.DeliveryDelivery {
		addr := w.state.Address
		req.Address = &addr
	}

	order, err := placer.PlaceOrder(ctx, req, lang)
	if err != nil {
		return nil, err
	}

	w.state.Step = StepCompleted
	w.state.OrderID = order.ID
	w.state.OrderNumber = order.OrderNumber
	w.state.Summary = Summary(order, lang)
	return order, nil
}

// Dispatch clears the cart and returns the messaging deep link for the summary.
func (w *Wizard) Dispatch(ctx context.Context, number string) (string, error) {
	if err := w.finish(ctx, HandoffDispatched); err != nil {
		return "", err
	}
	return notify.WhatsAppLink(number, w.state.Summary), nil
}

// Dismiss clears the cart without opening the messaging channel.
func (w *Wizard) Dismiss(ctx context.Context) error {
	return w.finish(ctx, HandoffDismissed)
}

func (w *Wizard) finish(ctx context.Context, h Handoff) error {
	if w.state.Step != StepCompleted {
		return ErrInvalidTransition
	}
	if w.state.Handoff == HandoffNone {
		if err := w.cart.Clear(ctx); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		w.state.Handoff = h
	}
	return nil
}
