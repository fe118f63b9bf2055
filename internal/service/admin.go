package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flicky/haiti-storefront/internal/admin"
	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/repository"
)

var ErrInvalidFilter = errors.New("invalid status filter")

type AdminService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
	now         func() time.Time
}

func NewAdminService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, logger *slog.Logger) *AdminService {
	return &AdminService{orderRepo: orderRepo, productRepo: productRepo, logger: logger, now: time.Now}
}

// ListOrders returns all orders newest first, narrowed by an order status or "all".
func (s *AdminService) ListOrders(ctx context.Context, filter string) ([]model.Order, error) {
	if !admin.ValidFilter(filter) {
		return nil, ErrInvalidFilter
	}
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return admin.Filter(orders, filter), nil
}

func (s *AdminService) Stats(ctx context.Context) (admin.Stats, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return admin.Stats{}, fmt.Errorf("list orders: %w", err)
	}
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return admin.Stats{}, fmt.Errorf("count products: %w", err)
	}
	return admin.ComputeStats(orders, products), nil
}

// UpdateStatus sets one status field of an order and returns the updated order.
func (s *AdminService) UpdateStatus(ctx context.Context, id uuid.UUID, field, value string) (*model.Order, error) {
	u, err := lifecycle.ParseUpdate(field, value)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, u)
}

// BulkUpdate applies the same status change to every listed order. Failures
// are reported per order and do not stop the rest.
func (s *AdminService) BulkUpdate(ctx context.Context, ids []uuid.UUID, field, value string) ([]dto.BulkResult, error) {
	u, err := lifecycle.ParseUpdate(field, value)
	if err != nil {
		return nil, err
	}
	results := make([]dto.BulkResult, 0, len(ids))
	for _, id := range ids {
		r := dto.BulkResult{OrderID: id}
		if _, err := s.apply(ctx, id, u); err != nil {
			if !errors.Is(err, ErrOrderNotFound) {
				s.logger.Error("bulk status update", "order_id", id, "error", err)
			}
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results, nil
}

// Export writes the filtered orders as a spreadsheet.
func (s *AdminService) Export(ctx context.Context, w io.Writer, filter string) error {
	orders, err := s.ListOrders(ctx, filter)
	if err != nil {
		return err
	}
	return admin.ExportXLSX(w, orders)
}

func (s *AdminService) apply(ctx context.Context, id uuid.UUID, u lifecycle.Update) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	patch, err := lifecycle.Apply(order, u, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}
