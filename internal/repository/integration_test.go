package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
)

func insertProduct(t *testing.T, name string, price decimal.Decimal, category model.Category) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO products (id, name_ht, name_fr, name_en, description_ht, description_fr, description_en,
			price, category, status, has_variants, image_url, thumbnail_urls, created_at, updated_at)
		 VALUES ($1, $2, $2, $2, '', '', '', $3, $4, 'in_stock', false, '', '{}', NOW(), NOW())`,
		id, name, price, category,
	)
	require.NoError(t, err)
	return id
}

func TestUserRepo_CreateAndGetByEmail(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "users")

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := &model.User{
		Email: "test@example.com", Password: "hashed", FullName: "Jean Dupont", Role: model.RoleCustomer,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, model.RoleCustomer, found.Role)
}

func TestProductRepo_ListAndGet(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "products")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	id := insertProduct(t, "Radio", decimal.NewFromFloat(2500), model.CategoryElectronics)
	insertProduct(t, "Sandal", decimal.NewFromFloat(800), model.CategoryClothing)

	found, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Radio", found.Name.EN)

	products, total, err := repo.List(ctx, ProductFilter{Category: model.CategoryClothing, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Sandal", products[0].Name.HT)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepo_CreateGetUpdate(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders", "products", "users")

	orderRepo := NewOrderRepository(testPool)
	ctx := context.Background()
	productID := insertProduct(t, "Bag", decimal.NewFromFloat(1500), model.CategoryBags)
	now := time.Now().UTC().Truncate(time.Millisecond)

	order := &model.Order{
		OrderNumber:    lifecycle.OrderNumber(now),
		Customer:       model.Customer{Name: "Guest", Phone: "3700"},
		DeliveryMethod: model.DeliveryDelivery,
		DeliveryAddress: &model.DeliveryAddress{
			Street: "1 Rue", City: "Les Cayes", Department: "Sud", Phone: "3700",
		},
		Subtotal: decimal.NewFromInt(1500), DeliveryFee: decimal.NewFromInt(200), Total: decimal.NewFromInt(1700),
		PaymentStatus: model.PaymentPending50, OrderStatus: model.OrderStatusPending,
		Items: []model.OrderItem{
			{ProductID: productID, Name: model.Localized{EN: "Bag"}, Quantity: 1, Price: decimal.NewFromInt(1500)},
		},
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, orderRepo.Create(ctx, order))

	found, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uuid.Nil, found.UserID)
	require.NotNil(t, found.DeliveryAddress)
	assert.Equal(t, model.Department("Sud"), found.DeliveryAddress.Department)
	require.Len(t, found.Items, 1)

	first := now.Add(time.Minute)
	_, err = lifecycle.Apply(found, lifecycle.SetOrderStatus{Status: model.OrderStatusConfirmed}, first)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Update(ctx, order.ID, lifecycle.Patch{
		OrderStatus: &found.OrderStatus, ConfirmedAt: found.ConfirmedAt, UpdatedAt: first,
	}))

	// A stale patch must not overwrite the recorded milestone.
	later := first.Add(time.Hour)
	require.NoError(t, orderRepo.Update(ctx, order.ID, lifecycle.Patch{ConfirmedAt: &later, UpdatedAt: later}))

	updated, err := orderRepo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.OrderStatus)
	require.NotNil(t, updated.ConfirmedAt)
	assert.True(t, first.Equal(*updated.ConfirmedAt))

	all, err := orderRepo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	err = orderRepo.Update(ctx, uuid.New(), lifecycle.Patch{UpdatedAt: now})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderRepo_CreateUniqueness(t *testing.T) {
	requireDB(t)
	cleanupTable(t, "order_items", "orders")

	repo := NewOrderRepository(testPool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	newOrder := func() *model.Order {
		return &model.Order{
			OrderNumber:    lifecycle.OrderNumber(now),
			Customer:       model.Customer{Phone: "3700"},
			DeliveryMethod: model.DeliveryPickup,
			Subtotal:       decimal.NewFromInt(100), DeliveryFee: decimal.Zero, Total: decimal.NewFromInt(100),
			PaymentStatus: model.PaymentPending50, OrderStatus: model.OrderStatusPending,
			CreatedAt: now, UpdatedAt: now,
		}
	}

	first := newOrder()
	first.ID = uuid.New()
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, newOrder())
	assert.ErrorIs(t, err, ErrDuplicateOrderNumber)

	again := newOrder()
	again.ID = first.ID
	again.OrderNumber = lifecycle.OrderNumber(now.Add(time.Millisecond))
	err = repo.Create(ctx, again)
	assert.ErrorIs(t, err, ErrOrderExists)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
