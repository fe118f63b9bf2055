package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/flicky/haiti-storefront/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_Pickup(t *testing.T) {
	b := Compute([]Line{{UnitPrice: d("1000"), Quantity: 2}}, model.DeliveryPickup, DefaultDeliveryFee)
	assert.True(t, b.Subtotal.Equal(d("2000")))
	assert.True(t, b.DeliveryFee.IsZero())
	assert.True(t, b.Total.Equal(d("2000")))
	assert.True(t, b.Upfront.Equal(d("1000")))
	assert.True(t, b.OnDelivery.Equal(d("1000")))
}

func TestCompute_Delivery(t *testing.T) {
	b := Compute([]Line{{UnitPrice: d("1500"), Quantity: 1}}, model.DeliveryDelivery, DefaultDeliveryFee)
	assert.True(t, b.Subtotal.Equal(d("1500")))
	assert.True(t, b.DeliveryFee.Equal(d("200")))
	assert.True(t, b.Total.Equal(d("1700")))
	assert.True(t, b.Upfront.Equal(d("850")))
	assert.True(t, b.OnDelivery.Equal(d("850")))
}

func TestCompute_UnselectedMethodHasNoFee(t *testing.T) {
	b := Compute([]Line{{UnitPrice: d("10"), Quantity: 1}}, "", DefaultDeliveryFee)
	assert.True(t, b.DeliveryFee.IsZero())
	assert.True(t, b.Total.Equal(d("10")))
}

func TestCompute_Empty(t *testing.T) {
	b := Compute(nil, model.DeliveryPickup, DefaultDeliveryFee)
	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.Total.IsZero())
	assert.True(t, b.Upfront.IsZero())
	assert.True(t, b.OnDelivery.IsZero())
}

func TestSplit_RemainderGoesToDelivery(t *testing.T) {
	tests := []struct {
		total, upfront, onDelivery string
	}{
		{"0.01", "0", "0.01"},
		{"100.05", "50.02", "50.03"},
		{"1701", "850.5", "850.5"},
		{"999.99", "499.99", "500"},
	}
	for _, tt := range tests {
		up, down := Split(d(tt.total))
		assert.True(t, up.Equal(d(tt.upfront)), "upfront for %s: %s", tt.total, up)
		assert.True(t, down.Equal(d(tt.onDelivery)), "delivery for %s: %s", tt.total, down)
		assert.True(t, up.Add(down).Equal(d(tt.total)))
	}
}

func TestSubtotal_ExactSum(t *testing.T) {
	lines := []Line{
		{UnitPrice: d("0.10"), Quantity: 3},
		{UnitPrice: d("0.20"), Quantity: 1},
		{UnitPrice: d("1234.56"), Quantity: 7},
	}
	assert.True(t, Subtotal(lines).Equal(d("8642.42")))
}
