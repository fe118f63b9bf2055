// Package pricing computes cart and order totals and the 50/50 payment split.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/model"
)

// CentPlaces is the number of fractional digits kept for payment halves.
const CentPlaces = 2

// DefaultDeliveryFee is the surcharge for home delivery, in gourdes.
var DefaultDeliveryFee = decimal.NewFromInt(200)

var two = decimal.NewFromInt(2)

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	Upfront     decimal.Decimal `json:"upfront_payment"`
	OnDelivery  decimal.Decimal `json:"delivery_payment"`
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		if l.Quantity <= 0 || l.UnitPrice.IsNegative() {
			continue
		}
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// DeliveryFee returns fee for home delivery and zero otherwise, including
// when no method has been chosen yet.
func DeliveryFee(method model.DeliveryMethod, fee decimal.Decimal) decimal.Decimal {
	if method == model.DeliveryDelivery {
		return fee
	}
	return decimal.Zero
}

// Split halves total. Any remainder below one centime goes to the delivery half.
func Split(total decimal.Decimal) (upfront, onDelivery decimal.Decimal) {
	upfront = total.Div(two).Truncate(CentPlaces)
	return upfront, total.Sub(upfront)
}

func Compute(lines []Line, method model.DeliveryMethod, fee decimal.Decimal) Breakdown {
	b := Breakdown{
		Subtotal:    Subtotal(lines),
		DeliveryFee: DeliveryFee(method, fee),
	}
	b.Total = b.Subtotal.Add(b.DeliveryFee)
	b.Upfront, b.OnDelivery = Split(b.Total)
	return b
}
