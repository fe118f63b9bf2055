package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/flicky/haiti-storefront/internal/model"
)

const (
	FieldPaymentStatus = "payment_status"
	FieldOrderStatus   = "order_status"
	FieldAdminNotes    = "admin_notes"
)

// Update is one of SetPaymentStatus, SetOrderStatus or SetAdminNotes.
type Update interface {
	isUpdate()
}

type SetPaymentStatus struct{ Status model.PaymentStatus }

type SetOrderStatus struct{ Status model.OrderStatus }

// SetAdminNotes replaces the staff-only notes. An empty value clears them.
type SetAdminNotes struct{ Notes string }

func (SetPaymentStatus) isUpdate() {}
func (SetOrderStatus) isUpdate()   {}
func (SetAdminNotes) isUpdate()    {}

// ParseUpdate turns a (field, value) pair from the admin API into an Update.
func ParseUpdate(field, value string) (Update, error) {
	switch field {
	case FieldPaymentStatus:
		s := model.PaymentStatus(value)
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidStatus, field, value)
		}
		return SetPaymentStatus{Status: s}, nil
	case FieldOrderStatus:
		s := model.OrderStatus(value)
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidStatus, field, value)
		}
		return SetOrderStatus{Status: s}, nil
	case FieldAdminNotes:
		return SetAdminNotes{Notes: strings.TrimSpace(value)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// Patch lists the order fields an update changed. Nil fields are untouched.
type Patch struct {
	PaymentStatus    *model.PaymentStatus
	OrderStatus      *model.OrderStatus
	AdminNotes       *string
	FirstPaymentDate *time.Time
	FinalPaymentDate *time.Time
	ConfirmedAt      *time.Time
	ReadyAt          *time.Time
	DeliveredAt      *time.Time
	UpdatedAt        time.Time
}

// Apply sets the status carried by u on order and stamps the milestone it
// reaches if that milestone has no timestamp yet.
func Apply(order *model.Order, u Update, now time.Time) (Patch, error) {
	p := Patch{UpdatedAt: now}
	switch u := u.(type) {
	case SetPaymentStatus:
		if !u.Status.Valid() {
			return Patch{}, ErrInvalidStatus
		}
		order.PaymentStatus = u.Status
		p.PaymentStatus = &u.Status
		switch u.Status {
		case model.PaymentPaid50:
			p.FirstPaymentDate = stamp(&order.FirstPaymentDate, now)
		case model.PaymentFullyPaid:
			p.FinalPaymentDate = stamp(&order.FinalPaymentDate, now)
		}
	case SetOrderStatus:
		if !u.Status.Valid() {
			return Patch{}, ErrInvalidStatus
		}
		order.OrderStatus = u.Status
		p.OrderStatus = &u.Status
		switch u.Status {
		case model.OrderStatusConfirmed:
			p.ConfirmedAt = stamp(&order.ConfirmedAt, now)
		case model.OrderStatusReady:
			p.ReadyAt = stamp(&order.ReadyAt, now)
		case model.OrderStatusDelivered:
			p.DeliveredAt = stamp(&order.DeliveredAt, now)
		}
	case SetAdminNotes:
		order.AdminNotes = u.Notes
		p.AdminNotes = &u.Notes
	default:
		return Patch{}, fmt.Errorf("unsupported update %T", u)
	}
	order.UpdatedAt = now
	return p, nil
}

// stamp sets *field to now if unset and returns the new value, or nil when
// the milestone was already recorded.
func stamp(field **time.Time, now time.Time) *time.Time {
	if *field != nil {
		return nil
	}
	t := now
	*field = &t
	return &t
}
