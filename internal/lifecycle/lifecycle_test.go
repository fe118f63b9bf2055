package lifecycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

func cartItem(price string, qty int) model.CartItem {
	return model.CartItem{
		Product: model.Product{
			ID:    uuid.New(),
			Name:  model.Localized{HT: "Chemiz", FR: "Chemise", EN: "Shirt"},
			Price: decimal.RequireFromString(price),
		},
		Quantity: qty,
	}
}

func validRequest() PlaceRequest {
	return PlaceRequest{
		UserID:         uuid.New(),
		Customer:       model.Customer{Name: "Marie", Email: "marie@example.com"},
		Items:          []model.CartItem{cartItem("1000", 2)},
		DeliveryMethod: model.DeliveryPickup,
		AgreeTerms:     true,
		DeliveryFee:    pricing.DefaultDeliveryFee,
	}
}

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "HT12345678", OrderNumber(time.UnixMilli(1712345678)))
	assert.Equal(t, "HT00000042", OrderNumber(time.UnixMilli(1700000000042)))
	assert.Len(t, OrderNumber(time.Now()), 10)
}

func TestPlace_Pickup(t *testing.T) {
	now := time.UnixMilli(1712345678)
	order, err := Place(validRequest(), now)
	require.NoError(t, err)

	assert.Equal(t, "HT12345678", order.OrderNumber)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(2000)))
	assert.True(t, order.DeliveryFee.IsZero())
	assert.True(t, order.Total.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, model.PaymentPending50, order.PaymentStatus)
	assert.Equal(t, model.OrderStatusPending, order.OrderStatus)
	assert.Nil(t, order.DeliveryAddress)
	assert.Nil(t, order.ConfirmedAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Shirt", order.Items[0].Name.EN)
}

func TestPlace_DeliveryAddsFee(t *testing.T) {
	req := validRequest()
	req.Items = []model.CartItem{cartItem("1500", 1)}
	req.DeliveryMethod = model.DeliveryDelivery
	req.Address = &model.DeliveryAddress{Street: "5 Rue Pavée", City: "Jacmel", Department: "Sud-Est", Phone: "3700"}

	order, err := Place(req, time.Now())
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(1700)))
	b := Breakdown(order)
	assert.True(t, b.Upfront.Equal(decimal.NewFromInt(850)))
	assert.True(t, b.OnDelivery.Equal(decimal.NewFromInt(850)))
	require.NotNil(t, order.DeliveryAddress)
	assert.Equal(t, "Jacmel", order.DeliveryAddress.City)
}

func TestPlace_FreezesUnitPrice(t *testing.T) {
	req := validRequest()
	order, err := Place(req, time.Now())
	require.NoError(t, err)

	req.Items[0].Product.Price = decimal.NewFromInt(1)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(1000)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(2000)))
}

func TestPlace_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlaceRequest)
		want   error
	}{
		{"terms not agreed", func(r *PlaceRequest) { r.AgreeTerms = false }, ErrTermsNotAccepted},
		{"terms checked before empty cart", func(r *PlaceRequest) { r.AgreeTerms = false; r.Items = nil }, ErrTermsNotAccepted},
		{"empty cart", func(r *PlaceRequest) { r.Items = nil }, ErrEmptyCart},
		{"no method", func(r *PlaceRequest) { r.DeliveryMethod = "" }, ErrInvalidDeliveryMethod},
		{"delivery without address", func(r *PlaceRequest) { r.DeliveryMethod = model.DeliveryDelivery }, ErrAddressRequired},
		{"delivery with partial address", func(r *PlaceRequest) {
			r.DeliveryMethod = model.DeliveryDelivery
			r.Address = &model.DeliveryAddress{Street: "x", City: "y", Department: "Ouest"}
		}, ErrAddressRequired},
		{"no contact", func(r *PlaceRequest) { r.Customer = model.Customer{Name: "Anon"} }, ErrContactRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := Place(req, time.Now())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
