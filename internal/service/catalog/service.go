package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
)

// Service serves catalog reads and the admin-style writes used by seeding.
// Reads re-scan the collection on every call; the catalog is small and
// read-mostly, so no index or cache sits in front of it.
type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
}

func New(products productrepo.Repository, categories categoryrepo.Repository) *Service {
	return &Service{products: products, categories: categories}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// ListByCategory matches the category string exactly. An unknown category is
// an empty result, not an error.
func (s *Service) ListByCategory(ctx context.Context, name string) ([]domain.Product, error) {
	return s.products.ListByCategory(ctx, name)
}

// ListFeatured returns featured products in store order, truncated to limit
// when limit > 0.
func (s *Service) ListFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.products.ListFeatured(ctx, limit)
}

// Search rejects a blank query: an empty search is a caller error, not an
// empty result.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.Invalid("q", "search query is required")
	}
	return s.products.Search(ctx, query)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// CreateProductInput mirrors the product insert payload.
type CreateProductInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice"`
	Category        string   `json:"category"`
	Image           string   `json:"image"`
	Rating          float64  `json:"rating"`
	ReviewCount     int      `json:"reviewCount"`
	Stock           int      `json:"stock"`
	Featured        bool     `json:"featured"`
	Badge           string   `json:"badge"`
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "required")
	}
	if in.Price <= 0 {
		return nil, domain.Invalid("price", "must be positive")
	}
	if in.DiscountedPrice != nil && *in.DiscountedPrice > in.Price {
		return nil, domain.Invalid("discountedPrice", "must not exceed price")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, domain.Invalid("rating", "must be between 0 and 5")
	}
	if in.ReviewCount < 0 {
		return nil, domain.Invalid("reviewCount", "must not be negative")
	}
	if in.Stock < 0 {
		return nil, domain.Invalid("stock", "must not be negative")
	}
	// Category is a denormalized string on the product; validating it here
	// keeps typo'd categories out without a foreign key.
	if _, err := s.categories.GetByName(ctx, in.Category); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("category", "unknown category "+in.Category)
		}
		return nil, err
	}

	return s.products.Create(ctx, domain.Product{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		DiscountedPrice: in.DiscountedPrice,
		Category:        in.Category,
		Image:           in.Image,
		Rating:          in.Rating,
		ReviewCount:     in.ReviewCount,
		Stock:           in.Stock,
		Featured:        in.Featured,
		Badge:           in.Badge,
		CreatedAt:       time.Now().UTC(),
	})
}

type CreateCategoryInput struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("name", "required")
	}
	return s.categories.Create(ctx, domain.Category{Name: in.Name, Image: in.Image})
}
