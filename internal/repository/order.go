package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrOrderExists          = errors.New("order already exists")
	ErrDuplicateOrderNumber = errors.New("order number already taken")
)

const (
	uniqueViolation  = "23505"
	orderPrimaryKey  = "orders_pkey"
	orderNumberIndex = "orders_order_number_idx"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	Update(ctx context.Context, id uuid.UUID, patch lifecycle.Patch) error
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

const orderColumns = `id, user_id, order_number, customer_name, customer_email, customer_phone,
	delivery_method, delivery_street, delivery_city, delivery_department, delivery_phone,
	subtotal, delivery_fee, total, payment_status, order_status, special_instructions, admin_notes,
	first_payment_date, final_payment_date, confirmed_at, ready_at, delivered_at, created_at, updated_at`

// Create inserts the order and its items in one transaction. A preset
// order.ID is kept; otherwise a new one is assigned.
func (r *pgOrderRepo) Create(ctx context.Context, order *model.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	var street, city, department, phone *string
	if a := order.DeliveryAddress; a != nil {
		dep := string(a.Department)
		street, city, department, phone = &a.Street, &a.City, &dep, &a.Phone
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO orders (`+orderColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		         NULL, NULL, NULL, NULL, NULL, $19, $20)`,
		order.ID, nullableUUID(order.UserID), order.OrderNumber,
		order.Customer.Name, order.Customer.Email, order.Customer.Phone,
		order.DeliveryMethod, street, city, department, phone,
		order.Subtotal, order.DeliveryFee, order.Total,
		order.PaymentStatus, order.OrderStatus, order.SpecialInstructions, order.AdminNotes,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		switch violated(err) {
		case orderPrimaryKey:
			return ErrOrderExists
		case orderNumberIndex:
			return ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.ID = uuid.New()
		item.OrderID = order.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items (id, order_id, product_id, name_ht, name_fr, name_en, quantity, size, color, price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.ID, item.OrderID, item.ProductID, item.Name.HT, item.Name.FR, item.Name.EN,
			item.Quantity, item.Size, item.Color, item.Price,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *pgOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, product_id, name_ht, name_fr, name_en, quantity, size, color, price
		 FROM order_items WHERE order_id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(
			&item.ID, &item.ProductID, &item.Name.HT, &item.Name.FR, &item.Name.EN,
			&item.Quantity, &item.Size, &item.Color, &item.Price,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.OrderID = order.ID
		order.Items = append(order.Items, item)
	}
	return order, rows.Err()
}

func (r *pgOrderRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *pgOrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *pgOrderRepo) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// Update writes the fields set in patch. Milestone columns are only filled
// when still NULL so a stale read can never overwrite a recorded milestone.
func (r *pgOrderRepo) Update(ctx context.Context, id uuid.UUID, patch lifecycle.Patch) error {
	sets := []string{"updated_at = $2"}
	args := []any{id, patch.UpdatedAt}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	stamp := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = COALESCE(%s, $%d)", column, column, len(args)))
	}

	if patch.PaymentStatus != nil {
		set("payment_status", *patch.PaymentStatus)
	}
	if patch.OrderStatus != nil {
		set("order_status", *patch.OrderStatus)
	}
	if patch.AdminNotes != nil {
		set("admin_notes", *patch.AdminNotes)
	}
	if patch.FirstPaymentDate != nil {
		stamp("first_payment_date", *patch.FirstPaymentDate)
	}
	if patch.FinalPaymentDate != nil {
		stamp("final_payment_date", *patch.FinalPaymentDate)
	}
	if patch.ConfirmedAt != nil {
		stamp("confirmed_at", *patch.ConfirmedAt)
	}
	if patch.ReadyAt != nil {
		stamp("ready_at", *patch.ReadyAt)
	}
	if patch.DeliveredAt != nil {
		stamp("delivered_at", *patch.DeliveredAt)
	}

	ct, err := r.pool.Exec(ctx, `UPDATE orders SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o                               model.Order
		userID                          *uuid.UUID
		street, city, department, phone *string
	)
	err := row.Scan(
		&o.ID, &userID, &o.OrderNumber, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.DeliveryMethod, &street, &city, &department, &phone,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.PaymentStatus, &o.OrderStatus,
		&o.SpecialInstructions, &o.AdminNotes,
		&o.FirstPaymentDate, &o.FinalPaymentDate, &o.ConfirmedAt, &o.ReadyAt, &o.DeliveredAt,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		o.UserID = *userID
	}
	if o.DeliveryMethod == model.DeliveryDelivery && street != nil {
		o.DeliveryAddress = &model.DeliveryAddress{
			Street:     deref(street),
			City:       deref(city),
			Department: model.Department(deref(department)),
			Phone:      deref(phone),
		}
	}
	return &o, nil
}

// violated returns the constraint a unique violation tripped, or "".
func violated(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}

func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
