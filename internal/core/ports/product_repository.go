package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Category   string
	ProducerID string
	// SortBy is "created_at" or "price"; SortAsc orders ascending.
	SortBy  string
	SortAsc bool
	Page    int
	Limit   int
}

// ProductRepository defines the persistence interface for product listings.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
