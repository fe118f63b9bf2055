package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/flicky/haiti-storefront/internal/checkout"
	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/repository"
)

var errStoreDown = errors.New("store down")

type memSessionStore struct {
	carts     map[string][]model.CartItem
	checkouts map[string]checkout.State
	langs     map[string]model.Language
	failSave  bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		carts:     make(map[string][]model.CartItem),
		checkouts: make(map[string]checkout.State),
		langs:     make(map[string]model.Language),
	}
}

func (m *memSessionStore) LoadCart(_ context.Context, id string) ([]model.CartItem, error) {
	return append([]model.CartItem(nil), m.carts[id]...), nil
}

func (m *memSessionStore) SaveCart(_ context.Context, id string, items []model.CartItem) error {
	if m.failSave {
		return errStoreDown
	}
	m.carts[id] = append([]model.CartItem(nil), items...)
	return nil
}

func (m *memSessionStore) LoadCheckout(_ context.Context, id string) (*checkout.State, error) {
	st, ok := m.checkouts[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (m *memSessionStore) SaveCheckout(_ context.Context, id string, state checkout.State) error {
	if m.failSave {
		return errStoreDown
	}
	m.checkouts[id] = state
	return nil
}

func (m *memSessionStore) DeleteCheckout(_ context.Context, id string) error {
	delete(m.checkouts, id)
	return nil
}

func (m *memSessionStore) LoadLanguage(_ context.Context, id string) (model.Language, error) {
	if lang, ok := m.langs[id]; ok {
		return lang, nil
	}
	return model.LanguageHT, nil
}

func (m *memSessionStore) SaveLanguage(_ context.Context, id string, lang model.Language) error {
	m.langs[id] = lang
	return nil
}

type mockOrderRepo struct {
	orders map[uuid.UUID]*model.Order
	ids    []uuid.UUID
	// createErr fails the next Create once.
	createErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		return err
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	stored := *order
	m.orders[order.ID] = &stored
	m.ids = append(m.ids, order.ID)
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	for _, id := range m.ids {
		if o := m.orders[id]; o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	orders := make([]model.Order, 0, len(m.ids))
	for _, id := range m.ids {
		orders = append(orders, *m.orders[id])
	}
	return orders, nil
}

func (m *mockOrderRepo) Update(_ context.Context, id uuid.UUID, p lifecycle.Patch) error {
	o, ok := m.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if p.PaymentStatus != nil {
		o.PaymentStatus = *p.PaymentStatus
	}
	if p.OrderStatus != nil {
		o.OrderStatus = *p.OrderStatus
	}
	if p.AdminNotes != nil {
		o.AdminNotes = *p.AdminNotes
	}
	keep := func(dst **time.Time, v *time.Time) {
		if *dst == nil && v != nil {
			*dst = v
		}
	}
	keep(&o.FirstPaymentDate, p.FirstPaymentDate)
	keep(&o.FinalPaymentDate, p.FinalPaymentDate)
	keep(&o.ConfirmedAt, p.ConfirmedAt)
	keep(&o.ReadyAt, p.ReadyAt)
	keep(&o.DeliveredAt, p.DeliveredAt)
	o.UpdatedAt = p.UpdatedAt
	return nil
}

type mockPublisher struct {
	published []amqp.Publishing
	keys      []string
	err       error
}

func (m *mockPublisher) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if m.err != nil {
		return m.err
	}
	m.keys = append(m.keys, key)
	m.published = append(m.published, msg)
	return nil
}
