package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flicky/haiti-storefront/internal/model"
)

// ProductRepository is a read-only view of the catalog.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context, f ProductFilter) ([]model.Product, int, error)
	Count(ctx context.Context) (int, error)
}

type ProductFilter struct {
	Category model.Category
	Search   string
	Limit    int
	Offset   int
}

type pgProductRepo struct{ pool *pgxpool.Pool }

func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &pgProductRepo{pool: pool}
}

const productColumns = `id, name_ht, name_fr, name_en, description_ht, description_fr, description_en,
	price, category, status, has_variants, image_url, thumbnail_urls, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID, &p.Name.HT, &p.Name.FR, &p.Name.EN,
		&p.Description.HT, &p.Description.FR, &p.Description.EN,
		&p.Price, &p.Category, &p.Status, &p.HasVariants, &p.ImageURL, &p.ThumbnailURLs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// List returns products newest first. Search matches the name in any language.
func (r *pgProductRepo) List(ctx context.Context, f ProductFilter) ([]model.Product, int, error) {
	const where = `WHERE ($1 = '' OR category = $1)
		AND ($2 = '' OR name_ht ILIKE '%' || $2 || '%' OR name_fr ILIKE '%' || $2 || '%' OR name_en ILIKE '%' || $2 || '%')`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products `+where, string(f.Category), f.Search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products `+where+` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		string(f.Category), f.Search, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func (r *pgProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
