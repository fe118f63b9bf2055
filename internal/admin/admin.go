// Package admin aggregates and projects orders for the staff dashboard.
package admin

import (
	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/model"
)

// FilterAll selects every order.
const FilterAll = "all"

type Stats struct {
	TotalOrders   int             `json:"total_orders"`
	PendingOrders int             `json:"pending_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalProducts int             `json:"total_products"`
}

// ComputeStats counts orders, orders not yet delivered and revenue across all orders.
func ComputeStats(orders []model.Order, productCount int) Stats {
	s := Stats{TotalOrders: len(orders), TotalRevenue: decimal.Zero, TotalProducts: productCount}
	for _, o := range orders {
		if o.OrderStatus != model.OrderStatusDelivered {
			s.PendingOrders++
		}
		s.TotalRevenue = s.TotalRevenue.Add(o.Total)
	}
	return s
}

// Filter returns the orders whose status equals filter, or all of them for FilterAll.
func Filter(orders []model.Order, filter string) []model.Order {
	if filter == "" || filter == FilterAll {
		return orders
	}
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if string(o.OrderStatus) == filter {
			out = append(out, o)
		}
	}
	return out
}

// ValidFilter reports whether filter names "all" or an order status.
func ValidFilter(filter string) bool {
	return filter == "" || filter == FilterAll || model.OrderStatus(filter).Valid()
}
