// Package cart manages a shopper's line items keyed by product, size and color.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

// StorageKey is the namespace cart contents are persisted under.
const StorageKey = "haiti-cart-storage"

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Store persists cart contents for one session.
type Store interface {
	LoadCart(ctx context.Context, sessionID string) ([]model.CartItem, error)
	SaveCart(ctx context.Context, sessionID string, items []model.CartItem) error
}

type Cart struct {
	store     Store
	sessionID string
	items     []model.CartItem
}

// New loads the session's saved cart. A session with nothing saved starts empty.
func New(ctx context.Context, store Store, sessionID string) (*Cart, error) {
	items, err := store.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &Cart{store: store, sessionID: sessionID, items: items}, nil
}

// Add increments an existing entry with the same key or appends a new one.
func (c *Cart) Add(ctx context.Context, product model.Product, quantity int, size model.Size, color model.Color) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return c.mutate(ctx, func(items []model.CartItem) []model.CartItem {
		key := model.ItemKey{ProductID: product.ID, Size: size, Color: color}
		if i := indexOf(items, key); i >= 0 {
			items[i].Quantity += quantity
			return items
		}
		return append(items, model.CartItem{Product: product, Quantity: quantity, Size: size, Color: color})
	})
}

// UpdateQuantity sets the quantity of an entry, removing it when quantity < 1.
func (c *Cart) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int, size model.Size, color model.Color) error {
	if quantity < 1 {
		return c.Remove(ctx, productID, size, color)
	}
	return c.mutate(ctx, func(items []model.CartItem) []model.CartItem {
		if i := indexOf(items, model.ItemKey{ProductID: productID, Size: size, Color: color}); i >= 0 {
			items[i].Quantity = quantity
		}
		return items
	})
}

func (c *Cart) Remove(ctx context.Context, productID uuid.UUID, size model.Size, color model.Color) error {
	return c.mutate(ctx, func(items []model.CartItem) []model.CartItem {
		i := indexOf(items, model.ItemKey{ProductID: productID, Size: size, Color: color})
		if i < 0 {
			return items
		}
		return append(items[:i], items[i+1:]...)
	})
}

func (c *Cart) Clear(ctx context.Context) error {
	return c.mutate(ctx, func([]model.CartItem) []model.CartItem { return nil })
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []model.CartItem {
	return append([]model.CartItem(nil), c.items...)
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) TotalItems() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	return pricing.Subtotal(c.Lines())
}

func (c *Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.items))
	for _, item := range c.items {
		lines = append(lines, pricing.Line{UnitPrice: item.Product.Price, Quantity: item.Quantity})
	}
	return lines
}

// mutate applies fn to a copy of the items and persists the result. The
// in-memory cart only changes once the store has accepted it.
func (c *Cart) mutate(ctx context.Context, fn func([]model.CartItem) []model.CartItem) error {
	next := fn(c.Items())
	if err := c.store.SaveCart(ctx, c.sessionID, next); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	c.items = next
	return nil
}

func indexOf(items []model.CartItem, key model.ItemKey) int {
	for i, item := range items {
		if item.Key() == key {
			return i
		}
	}
	return -1
}
