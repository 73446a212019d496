package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// ProductInput carries the client-editable fields of a listing.
type ProductInput struct {
	Name          string
	Description   string
	Category      string
	Price         float64
	DiscountPrice float64
	ImageURLs     []string
	Badges        []string
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Items      []domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService implements listing management with ownership enforcement:
// a producer may only modify their own listings, admins may modify any.
type ProductService interface {
	Create(ctx context.Context, producerID string, in ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) (*ProductPage, error)
	Update(ctx context.Context, id, userID string, role domain.Role, in ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, userID string, role domain.Role) error
}
