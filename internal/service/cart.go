package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/cart"
	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

var (
	ErrVariantRequired = errors.New("size and color are required for this product")
	ErrInvalidVariant  = errors.New("invalid size or color")
)

type CartService struct {
	store    SessionStore
	products *ProductService
	fee      decimal.Decimal
}

func NewCartService(store SessionStore, products *ProductService, fee decimal.Decimal) *CartService {
	return &CartService{store: store, products: products, fee: fee}
}

// Open loads the session's cart.
func (s *CartService) Open(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return cart.New(ctx, s.store, sessionID)
}

func (s *CartService) Get(ctx context.Context, sessionID string, lang model.Language) (*dto.CartResponse, error) {
	c, err := s.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	resp := s.toCartResponse(c, lang)
	return &resp, nil
}

// AddItem adds a catalog product. Variant products need both a size and a
// color; for other products any selection is dropped.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req dto.AddCartItemRequest, lang model.Language) (*dto.CartResponse, error) {
	product, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	size, color := req.Size, req.Color
	if product.HasVariants {
		if size == "" || color == "" {
			return nil, ErrVariantRequired
		}
		if !size.Valid() || !color.Valid() {
			return nil, ErrInvalidVariant
		}
	} else {
		size, color = "", ""
	}

	c, err := s.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.Add(ctx, *product, req.Quantity, size, color); err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	resp := s.toCartResponse(c, lang)
	return &resp, nil
}

func (s *CartService) UpdateItem(ctx context.Context, sessionID string, req dto.UpdateCartItemRequest, lang model.Language) (*dto.CartResponse, error) {
	c, err := s.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateQuantity(ctx, req.ProductID, req.Quantity, req.Size, req.Color); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	resp := s.toCartResponse(c, lang)
	return &resp, nil
}

func (s *CartService) RemoveItem(ctx context.Context, sessionID string, req dto.RemoveCartItemRequest, lang model.Language) (*dto.CartResponse, error) {
	c, err := s.Open(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(ctx, req.ProductID, req.Size, req.Color); err != nil {
		return nil, fmt.Errorf("remove item: %w", err)
	}
	resp := s.toCartResponse(c, lang)
	return &resp, nil
}

func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	c, err := s.Open(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := c.Clear(ctx); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// toCartResponse prices the cart as pickup; the delivery fee only applies once
// a method is chosen at checkout.
func (s *CartService) toCartResponse(c *cart.Cart, lang model.Language) dto.CartResponse {
	items := c.Items()
	resp := dto.CartResponse{
		Items:      make([]dto.CartItemResponse, 0, len(items)),
		TotalItems: c.TotalItems(),
		Breakdown:  pricing.Compute(c.Lines(), model.DeliveryPickup, s.fee),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name.In(lang),
			ImageURL:  item.Product.ImageURL,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			LineTotal: item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return resp
}
