// Package lifecycle places orders and moves them through payment and
// fulfillment status.
//
// Either status axis may be set to any value of its enumeration, so staff can
// correct a mis-set status. Milestone timestamps are the one-way part: each is
// stamped the first time its status is reached and never overwritten.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

// OrderNumberPrefix precedes the last eight digits of the epoch millisecond clock.
const OrderNumberPrefix = "HT"

var (
	ErrTermsNotAccepted      = errors.New("payment terms not accepted")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidDeliveryMethod = errors.New("invalid delivery method")
	ErrAddressRequired       = errors.New("complete delivery address required")
	ErrContactRequired       = errors.New("customer email or phone required")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrUnknownField          = errors.New("unknown status field")
)

type PlaceRequest struct {
	// OrderID, when set, is the id the order is stored under. Placing twice
	// with the same id yields the same order.
	OrderID             uuid.UUID
	UserID              uuid.UUID
	Customer            model.Customer
	Items               []model.CartItem
	DeliveryMethod      model.DeliveryMethod
	Address             *model.DeliveryAddress
	AgreeTerms          bool
	DeliveryFee         decimal.Decimal
	SpecialInstructions string
}

// OrderNumber formats now as "HT" followed by the eight least significant
// digits of its Unix millisecond timestamp.
func OrderNumber(now time.Time) string {
	return fmt.Sprintf("%s%08d", OrderNumberPrefix, now.UnixMilli()%100_000_000)
}

// Place builds a new order from a cart snapshot. Terms are checked before
// anything else so the caller can show the specific prompt.
func Place(req PlaceRequest, now time.Time) (*model.Order, error) {
	if !req.AgreeTerms {
		return nil, ErrTermsNotAccepted
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if !req.DeliveryMethod.Valid() {
		return nil, ErrInvalidDeliveryMethod
	}
	var address *model.DeliveryAddress
	if req.DeliveryMethod == model.DeliveryDelivery {
		if req.Address == nil || !req.Address.Complete() {
			return nil, ErrAddressRequired
		}
		a := *req.Address
		address = &a
	}
	if strings.TrimSpace(req.Customer.Email) == "" && strings.TrimSpace(req.Customer.Phone) == "" {
		return nil, ErrContactRequired
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	lines := make([]pricing.Line, 0, len(req.Items))
	for _, ci := range req.Items {
		items = append(items, model.OrderItem{
			ProductID: ci.Product.ID,
			Name:      ci.Product.Name,
			Quantity:  ci.Quantity,
			Size:      ci.Size,
			Color:     ci.Color,
			Price:     ci.Product.Price,
		})
		lines = append(lines, pricing.Line{UnitPrice: ci.Product.Price, Quantity: ci.Quantity})
	}
	b := pricing.Compute(lines, req.DeliveryMethod, req.DeliveryFee)

	return &model.Order{
		ID:                  req.OrderID,
		UserID:              req.UserID,
		OrderNumber:         OrderNumber(now),
		Customer:            req.Customer,
		DeliveryMethod:      req.DeliveryMethod,
		DeliveryAddress:     address,
		Subtotal:            b.Subtotal,
		DeliveryFee:         b.DeliveryFee,
		Total:               b.Total,
		PaymentStatus:       model.PaymentPending50,
		OrderStatus:         model.OrderStatusPending,
		SpecialInstructions: req.SpecialInstructions,
		Items:               items,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// Breakdown re-derives the payment halves of a placed order from its frozen totals.
func Breakdown(order *model.Order) pricing.Breakdown {
	up, down := pricing.Split(order.Total)
	return pricing.Breakdown{
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Total:       order.Total,
		Upfront:     up,
		OnDelivery:  down,
	}
}
