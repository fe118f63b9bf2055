package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/repository"
)

// OrdersQueue receives an OrderMessage for every placed order.
const OrdersQueue = "orders"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderAccessDenied = errors.New("access denied")
)

// Publisher is satisfied by *amqp.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type OrderService struct {
	orderRepo repository.OrderRepository
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository, publisher Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, publisher: publisher, logger: logger, now: time.Now}
}

// orderNumberAttempts bounds how many order numbers are tried when the
// generated one is already taken.
const orderNumberAttempts = 3

// PlaceOrder validates and stores a new order, then announces it on the
// orders queue. A failed publish is logged; the order stands. When req
// carries an order id that is already stored, that order is returned and
// nothing is published again.
func (s *OrderService) PlaceOrder(ctx context.Context, req lifecycle.PlaceRequest, lang model.Language) (*model.Order, error) {
	if existing, err := s.placed(ctx, req.OrderID); err != nil || existing != nil {
		return existing, err
	}

	now := s.now().UTC()
	order, err := lifecycle.Place(req, now)
	if err != nil {
		return nil, err
	}
	for attempt := 1; ; attempt++ {
		err = s.orderRepo.Create(ctx, order)
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) || attempt == orderNumberAttempts {
			break
		}
		order.OrderNumber = lifecycle.OrderNumber(now.Add(time.Duration(attempt) * time.Millisecond))
	}
	if errors.Is(err, repository.ErrOrderExists) {
		if existing, gerr := s.placed(ctx, req.OrderID); gerr != nil || existing != nil {
			return existing, gerr
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if s.publisher != nil {
		msg, _ := json.Marshal(model.OrderMessage{
			OrderID: order.ID, UserID: order.UserID, OrderNumber: order.OrderNumber, Language: lang,
		})
		err := s.publisher.PublishWithContext(ctx, "", OrdersQueue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			Body:         msg,
			DeliveryMode: amqp.Persistent,
		})
		if err != nil {
			s.logger.Error("publish order", "order_id", order.ID, "error", err)
		}
	}
	return order, nil
}

func (s *OrderService) placed(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrOrderAccessDenied
	}
	return order, nil
}

func (s *OrderService) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
