package ports

import (
	"context"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
)

// ReviewInput carries a new review's client-supplied fields.
type ReviewInput struct {
	ProductID string
	Rating    int
	Comment   string
}

// ReviewService implements review creation and retrieval.
type ReviewService interface {
	Create(ctx context.Context, userID string, in ReviewInput) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string, page, limit int) ([]domain.Review, int64, error)
	Delete(ctx context.Context, id, userID string, role domain.Role) error
}
