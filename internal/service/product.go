package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
)

const productCacheTTL = 60 * time.Second

// ProductService serves the read-only catalog. Products are cached in all
// three languages and localized per request.
type ProductService struct {
	productRepo repository.ProductRepository
	redisClient *redis.Client
}

func NewProductService(productRepo repository.ProductRepository, redisClient *redis.Client) *ProductService {
	return &ProductService{productRepo: productRepo, redisClient: redisClient}
}

// Get returns the catalog product, or ErrProductNotFound.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	cacheKey := "product:" + id.String()

	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
			var p model.Product
			if json.Unmarshal(cached, &p) == nil {
				return &p, nil
			}
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(product); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return product, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID, lang model.Language) (*dto.ProductResponse, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product, lang)
	return &resp, nil
}

func (s *ProductService) List(ctx context.Context, req dto.ListProductsRequest, lang model.Language) (*dto.ProductListResponse, error) {
	category := model.Category(req.Category)
	if category != "" && !category.Valid() {
		return nil, ErrInvalidCategory
	}

	products, total, err := s.productRepo.List(ctx, repository.ProductFilter{
		Category: category,
		Search:   req.Search,
		Limit:    req.Limit,
		Offset:   (req.Page - 1) * req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, toProductResponse(&products[i], lang))
	}
	return &dto.ProductListResponse{Products: items, Total: total, Page: req.Page, Limit: req.Limit}, nil
}

func toProductResponse(p *model.Product, lang model.Language) dto.ProductResponse {
	thumbs := p.ThumbnailURLs
	if thumbs == nil {
		thumbs = []string{}
	}
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name.In(lang),
		Description:   p.Description.In(lang),
		Price:         p.Price,
		Category:      p.Category,
		Status:        p.Status,
		HasVariants:   p.HasVariants,
		ImageURL:      p.ImageURL,
		ThumbnailURLs: thumbs,
		CreatedAt:     p.CreatedAt,
	}
}
