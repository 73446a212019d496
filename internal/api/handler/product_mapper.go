package handler

import (
	"github.com/supplyhub/marketplace-api/internal/core/domain"
	"github.com/supplyhub/marketplace-api/internal/core/ports"
)

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		ProducerID:    p.ProducerID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		ImageURLs:     p.ImageURLs,
		Badges:        p.Badges,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toListProductsResponse(page *ports.ProductPage) listProductsResponse {
	items := make([]productResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toProductResponse(&page.Items[i]))
	}
	return listProductsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		},
	}
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toProductInput(req productRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		ImageURLs:     req.ImageURLs,
		Badges:        req.Badges,
	}
}
