package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/checkout"
	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/repository"
)

var ErrNoCheckout = errors.New("no checkout in progress")

// CheckoutService drives a session's checkout wizard across requests. The
// wizard state lives in the session store between calls.
type CheckoutService struct {
	store    SessionStore
	carts    *CartService
	placer   checkout.Placer
	userRepo repository.UserRepository
	fee      decimal.Decimal
	whatsApp string
}

func NewCheckoutService(store SessionStore, carts *CartService, placer checkout.Placer, userRepo repository.UserRepository, fee decimal.Decimal, whatsApp string) *CheckoutService {
	return &CheckoutService{store: store, carts: carts, placer: placer, userRepo: userRepo, fee: fee, whatsApp: whatsApp}
}

// Start opens a fresh wizard, replacing any previous one. The cart must not be empty.
func (s *CheckoutService) Start(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	c, err := s.carts.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, lifecycle.ErrEmptyCart
	}
	w := checkout.New(c, s.fee)
	if err := s.save(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return toCheckoutResponse(w, ""), nil
}

func (s *CheckoutService) Get(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	w, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toCheckoutResponse(w, ""), nil
}

func (s *CheckoutService) SetDelivery(ctx context.Context, sessionID string, req dto.DeliveryRequest) (*dto.CheckoutResponse, error) {
	return s.step(ctx, sessionID, func(w *checkout.Wizard) error {
		if err := w.SetDeliveryMethod(req.DeliveryMethod); err != nil {
			return err
		}
		if req.Address != nil {
			return w.SetAddress(*req.Address)
		}
		return nil
	})
}

func (s *CheckoutService) Next(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	return s.step(ctx, sessionID, (*checkout.Wizard).Next)
}

func (s *CheckoutService) Back(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	return s.step(ctx, sessionID, (*checkout.Wizard).Back)
}

func (s *CheckoutService) AgreeTerms(ctx context.Context, sessionID string, agree bool) (*dto.CheckoutResponse, error) {
	return s.step(ctx, sessionID, func(w *checkout.Wizard) error { return w.AgreeTerms(agree) })
}

// Place submits the order. Signed-in shoppers default to their profile's
// contact details; anything in req overrides them. The wizard's order id is
// saved before the order is stored, so retrying after a failed save returns
// the order already placed instead of a second one.
func (s *CheckoutService) Place(ctx context.Context, sessionID string, userID uuid.UUID, req dto.PlaceOrderRequest, lang model.Language) (*dto.CheckoutResponse, error) {
	customer, err := s.customer(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	w, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if w.ReserveOrderID() {
		if err := s.save(ctx, sessionID, w); err != nil {
			return nil, err
		}
	}

	placer := placerFunc(func(ctx context.Context, pr lifecycle.PlaceRequest, lang model.Language) (*model.Order, error) {
		pr.SpecialInstructions = strings.TrimSpace(req.SpecialInstructions)
		return s.placer.PlaceOrder(ctx, pr, lang)
	})
	if _, err := w.Place(ctx, placer, userID, customer, lang); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return toCheckoutResponse(w, ""), nil
}

// Dispatch clears the cart and returns the messaging link carrying the order summary.
func (s *CheckoutService) Dispatch(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	w, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	link, err := w.Dispatch(ctx, s.whatsApp)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return toCheckoutResponse(w, link), nil
}

func (s *CheckoutService) Dismiss(ctx context.Context, sessionID string) (*dto.CheckoutResponse, error) {
	return s.step(ctx, sessionID, func(w *checkout.Wizard) error { return w.Dismiss(ctx) })
}

// Abandon drops the wizard and keeps the cart.
func (s *CheckoutService) Abandon(ctx context.Context, sessionID string) error {
	if err := s.store.DeleteCheckout(ctx, sessionID); err != nil {
		return fmt.Errorf("abandon checkout: %w", err)
	}
	return nil
}

// step loads the wizard, applies fn and saves the result only if fn succeeded.
func (s *CheckoutService) step(ctx context.Context, sessionID string, fn func(*checkout.Wizard) error) (*dto.CheckoutResponse, error) {
	w, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.save(ctx, sessionID, w); err != nil {
		return nil, err
	}
	return toCheckoutResponse(w, ""), nil
}

func (s *CheckoutService) load(ctx context.Context, sessionID string) (*checkout.Wizard, error) {
	state, err := s.store.LoadCheckout(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNoCheckout
	}
	c, err := s.carts.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return checkout.Resume(c, s.fee, *state), nil
}

func (s *CheckoutService) save(ctx context.Context, sessionID string, w *checkout.Wizard) error {
	if err := s.store.SaveCheckout(ctx, sessionID, w.State()); err != nil {
		return fmt.Errorf("save checkout: %w", err)
	}
	return nil
}

func (s *CheckoutService) customer(ctx context.Context, userID uuid.UUID, req dto.PlaceOrderRequest) (model.Customer, error) {
	var c model.Customer
	if userID != uuid.Nil && s.userRepo != nil {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return c, fmt.Errorf("get user: %w", err)
		}
		if user != nil {
			c = model.Customer{Name: user.FullName, Email: user.Email, Phone: user.Phone}
		}
	}
	if v := strings.TrimSpace(req.Name); v != "" {
		c.Name = v
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		c.Email = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		c.Phone = v
	}
	return c, nil
}

type placerFunc func(ctx context.Context, req lifecycle.PlaceRequest, lang model.Language) (*model.Order, error)

func (f placerFunc) PlaceOrder(ctx context.Context, req lifecycle.PlaceRequest, lang model.Language) (*model.Order, error) {
	return f(ctx, req, lang)
}

func toCheckoutResponse(w *checkout.Wizard, link string) *dto.CheckoutResponse {
	st := w.State()
	return &dto.CheckoutResponse{
		Step:           st.Step,
		DeliveryMethod: st.DeliveryMethod,
		Address:        st.Address,
		AgreeTerms:     st.AgreeTerms,
		CanPlace:       w.CanPlace(),
		Breakdown:      w.Breakdown(),
		OrderNumber:    st.OrderNumber,
		Summary:        st.Summary,
		Handoff:        st.Handoff,
		MessagingLink:  link,
	}
}
