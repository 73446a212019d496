package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProductService implements listing management. Mutations require the caller
// to own the listing or hold the admin role.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, producerID string, in ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ProducerID:    producerID,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		ImageURLs:     in.ImageURLs,
		Badges:        in.Badges,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("producer_id", producerID).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) (*ports.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.SortBy != "price" {
		filter.SortBy = "created_at"
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ProductPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *ProductService) Update(ctx context.Context, id, userID string, role domain.Role, in ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.EditableBy(userID, role) {
		return nil, domain.ErrForbidden
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Category = in.Category
	product.Price = in.Price
	product.DiscountPrice = in.DiscountPrice
	product.ImageURLs = in.ImageURLs
	product.Badges = in.Badges
	product.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id, userID string, role domain.Role) error {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.EditableBy(userID, role) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Str("user_id", userID).Msg("product deleted")
	return nil
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
