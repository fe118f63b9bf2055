package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/haiti-storefront/internal/checkout"
	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

type checkoutFixture struct {
	svc    *CheckoutService
	store  *memSessionStore
	orders *mockOrderRepo
	users  *mockUserRepo
}

func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()
	store := newMemSessionStore()
	products := newMockProductRepo()
	plain := shirt()
	plain.HasVariants = false
	p := products.add(plain)

	carts := NewCartService(store, NewProductService(products, nil), pricing.DefaultDeliveryFee)
	orders := newMockOrderRepo()
	users := newMockUserRepo()
	svc := NewCheckoutService(store, carts, NewOrderService(orders, nil, discard), users, pricing.DefaultDeliveryFee, "50937000000")

	_, err := carts.AddItem(context.Background(), "s1", dto.AddCartItemRequest{ProductID: p.ID, Quantity: 2}, model.LanguageHT)
	require.NoError(t, err)
	return checkoutFixture{svc: svc, store: store, orders: orders, users: users}
}

func deliveryAddress() *model.DeliveryAddress {
	return &model.DeliveryAddress{Street: "5 Rue Pavée", City: "Jacmel", Department: "Sud-Est", Phone: "+50934445555"}
}

func TestCheckoutService_FullFlow(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Start(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepSelectingDelivery, resp.Step)

	resp, err = f.svc.SetDelivery(ctx, "s1", dto.DeliveryRequest{DeliveryMethod: model.DeliveryDelivery, Address: deliveryAddress()})
	require.NoError(t, err)
	assert.True(t, resp.Breakdown.Total.Equal(decimal.NewFromInt(3200)))

	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	resp, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepConfirmingPayment, resp.Step)
	assert.False(t, resp.CanPlace)

	resp, err = f.svc.AgreeTerms(ctx, "s1", true)
	require.NoError(t, err)
	assert.True(t, resp.CanPlace)

	resp, err = f.svc.Place(ctx, "s1", uuid.Nil, dto.PlaceOrderRequest{
		Name: "Jean", Phone: "+50931112222", SpecialInstructions: "  call first ",
	}, model.LanguageEN)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepCompleted, resp.Step)
	assert.True(t, strings.HasPrefix(resp.OrderNumber, "HT"))
	assert.Contains(t, resp.Summary, resp.OrderNumber)
	require.Len(t, f.orders.ids, 1)
	placed := f.orders.orders[f.orders.ids[0]]
	assert.Equal(t, "call first", placed.SpecialInstructions)
	assert.Len(t, f.store.carts["s1"], 1)

	resp, err = f.svc.Dispatch(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, checkout.HandoffDispatched, resp.Handoff)
	require.True(t, strings.HasPrefix(resp.MessagingLink, "https://wa.me/50937000000?text="))
	u, err := url.Parse(resp.MessagingLink)
	require.NoError(t, err)
	assert.Equal(t, resp.Summary, u.Query().Get("text"))
	assert.Empty(t, f.store.carts["s1"])
}

func TestCheckoutService_StartEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.Start(context.Background(), "other")
	assert.ErrorIs(t, err, lifecycle.ErrEmptyCart)
}

func TestCheckoutService_NoCheckout(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.svc.Get(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNoCheckout)
}

func TestCheckoutService_InvalidStepsAreNotSaved(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	_, err := f.svc.Start(ctx, "s1")
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, "s1")
	assert.ErrorIs(t, err, checkout.ErrDeliveryMethodRequired)

	_, err = f.svc.SetDelivery(ctx, "s1", dto.DeliveryRequest{DeliveryMethod: model.DeliveryDelivery, Address: &model.DeliveryAddress{Street: "x"}})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "s1")
	assert.ErrorIs(t, err, checkout.ErrAddressIncomplete)

	_, err = f.svc.AgreeTerms(ctx, "s1", true)
	assert.ErrorIs(t, err, checkout.ErrInvalidTransition)

	resp, err := f.svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepSelectingDelivery, resp.Step)
	assert.False(t, resp.AgreeTerms)
}

func TestCheckoutService_PlaceRequiresTerms(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	_, err := f.svc.Start(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.SetDelivery(ctx, "s1", dto.DeliveryRequest{DeliveryMethod: model.DeliveryPickup})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)

	_, err = f.svc.Place(ctx, "s1", uuid.Nil, dto.PlaceOrderRequest{Email: "jean@example.com"}, model.LanguageHT)
	assert.ErrorIs(t, err, lifecycle.ErrTermsNotAccepted)
	assert.Empty(t, f.orders.ids)
}

func TestCheckoutService_PlaceSignedInUsesProfile(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	user := &model.User{Email: "rose@example.com", FullName: "Rose Pierre", Phone: "+50938889999"}
	require.NoError(t, f.users.Create(ctx, user))

	_, err := f.svc.Start(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.SetDelivery(ctx, "s1", dto.DeliveryRequest{DeliveryMethod: model.DeliveryPickup})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.AgreeTerms(ctx, "s1", true)
	require.NoError(t, err)

	_, err = f.svc.Place(ctx, "s1", user.ID, dto.PlaceOrderRequest{}, model.LanguageHT)
	require.NoError(t, err)
	placed := f.orders.orders[f.orders.ids[0]]
	assert.Equal(t, user.ID, placed.UserID)
	assert.Equal(t, "Rose Pierre", placed.Customer.Name)
	assert.Equal(t, "rose@example.com", placed.Customer.Email)
}

func TestCheckoutService_DismissAndAbandon(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.Dismiss(ctx, "s1")
	assert.ErrorIs(t, err, checkout.ErrInvalidTransition)

	require.NoError(t, f.svc.Abandon(ctx, "s1"))
	_, err = f.svc.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoCheckout)
	assert.Len(t, f.store.carts["s1"], 1)
}

func (f checkoutFixture) toPayment(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Start(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.SetDelivery(ctx, "s1", dto.DeliveryRequest{DeliveryMethod: model.DeliveryPickup})
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	_, err = f.svc.AgreeTerms(ctx, "s1", true)
	require.NoError(t, err)
}

func TestCheckoutService_PlaceRetryAfterFailedSave(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()
	f.toPayment(t)

	_, err := f.svc.Place(ctx, "s1", uuid.Nil, dto.PlaceOrderRequest{Name: "Jean"}, model.LanguageHT)
	require.ErrorIs(t, err, lifecycle.ErrContactRequired)

	f.store.failSave = true
	_, err = f.svc.Place(ctx, "s1", uuid.Nil, dto.PlaceOrderRequest{Phone: "+50931112222"}, model.LanguageHT)
	require.ErrorIs(t, err, errStoreDown)
	require.Len(t, f.orders.ids, 1)
	assert.Equal(t, checkout.StepConfirmingPayment, f.store.checkouts["s1"].Step)

	f.store.failSave = false
	resp, err := f.svc.Place(ctx, "s1", uuid.Nil, dto.PlaceOrderRequest{Phone: "+50931112222"}, model.LanguageHT)
	require.NoError(t, err)
	assert.Equal(t, checkout.StepCompleted, resp.Step)
	require.Len(t, f.orders.ids, 1, "retry must not place a second order")
	assert.Equal(t, f.orders.orders[f.orders.ids[0]].OrderNumber, resp.OrderNumber)
}

func TestCheckoutService_PlaceNothingStoredWhenReservationFails(t *testing.T) {
	f := newCheckoutFixture(t)
	f.toPayment(t)

	f.store.failSave = true
	_, err := f.svc.Place(context.Background(), "s1", uuid.Nil, dto.PlaceOrderRequest{Phone: "+50931112222"}, model.LanguageHT)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Empty(t, f.orders.ids)
}
