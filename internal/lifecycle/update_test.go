package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/haiti-storefront/internal/model"
)

func newOrder() *model.Order {
	return &model.Order{PaymentStatus: model.PaymentPending50, OrderStatus: model.OrderStatusPending}
}

func TestApply_FirstPaymentStampedOnce(t *testing.T) {
	order := newOrder()
	t1 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	p, err := Apply(order, SetPaymentStatus{Status: model.PaymentPaid50}, t1)
	require.NoError(t, err)
	require.NotNil(t, order.FirstPaymentDate)
	assert.Equal(t, t1, *order.FirstPaymentDate)
	require.NotNil(t, p.FirstPaymentDate)

	p, err = Apply(order, SetPaymentStatus{Status: model.PaymentPaid50}, t2)
	require.NoError(t, err)
	assert.Equal(t, t1, *order.FirstPaymentDate)
	assert.Nil(t, p.FirstPaymentDate)
	assert.Equal(t, t2, order.UpdatedAt)
}

func TestApply_FullyPaidStampsFinalPayment(t *testing.T) {
	order := newOrder()
	now := time.Now()

	_, err := Apply(order, SetPaymentStatus{Status: model.PaymentFullyPaid}, now)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentFullyPaid, order.PaymentStatus)
	require.NotNil(t, order.FinalPaymentDate)
	assert.Nil(t, order.FirstPaymentDate)
}

func TestApply_ConfirmedSurvivesRevert(t *testing.T) {
	order := newOrder()
	t1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := Apply(order, SetOrderStatus{Status: model.OrderStatusConfirmed}, t1)
	require.NoError(t, err)
	_, err = Apply(order, SetOrderStatus{Status: model.OrderStatusPending}, t1.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.OrderStatus)
	_, err = Apply(order, SetOrderStatus{Status: model.OrderStatusConfirmed}, t1.Add(time.Hour))
	require.NoError(t, err)

	require.NotNil(t, order.ConfirmedAt)
	assert.Equal(t, t1, *order.ConfirmedAt)
}

func TestApply_JumpStampsOnlyTarget(t *testing.T) {
	order := newOrder()

	p, err := Apply(order, SetOrderStatus{Status: model.OrderStatusDelivered}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, order.OrderStatus)
	assert.NotNil(t, order.DeliveredAt)
	assert.Nil(t, order.ConfirmedAt)
	assert.Nil(t, order.ReadyAt)
	require.NotNil(t, p.OrderStatus)
	assert.Nil(t, p.PaymentStatus)
}

func TestApply_Ready(t *testing.T) {
	order := newOrder()
	_, err := Apply(order, SetOrderStatus{Status: model.OrderStatusReady}, time.Now())
	require.NoError(t, err)
	assert.NotNil(t, order.ReadyAt)
}

func TestApply_InvalidStatus(t *testing.T) {
	order := newOrder()
	_, err := Apply(order, SetOrderStatus{Status: "lost"}, time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, model.OrderStatusPending, order.OrderStatus)
}

func TestParseUpdate(t *testing.T) {
	u, err := ParseUpdate(FieldPaymentStatus, "paid_50")
	require.NoError(t, err)
	assert.Equal(t, SetPaymentStatus{Status: model.PaymentPaid50}, u)

	u, err = ParseUpdate(FieldOrderStatus, "ready")
	require.NoError(t, err)
	assert.Equal(t, SetOrderStatus{Status: model.OrderStatusReady}, u)

	_, err = ParseUpdate(FieldOrderStatus, "paid_50")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	u, err = ParseUpdate(FieldAdminNotes, "  call before noon ")
	require.NoError(t, err)
	assert.Equal(t, SetAdminNotes{Notes: "call before noon"}, u)

	_, err = ParseUpdate("total", "0")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestApply_AdminNotesLeaveStatusAlone(t *testing.T) {
	order := newOrder()
	now := time.Date(2024, 4, 5, 10, 0, 0, 0, time.UTC)

	p, err := Apply(order, SetAdminNotes{Notes: "paid by MonCash"}, now)
	require.NoError(t, err)
	assert.Equal(t, "paid by MonCash", order.AdminNotes)
	require.NotNil(t, p.AdminNotes)
	assert.Equal(t, "paid by MonCash", *p.AdminNotes)
	assert.Nil(t, p.PaymentStatus)
	assert.Nil(t, p.OrderStatus)
	assert.Equal(t, model.PaymentPending50, order.PaymentStatus)
	assert.Equal(t, now, order.UpdatedAt)
}
