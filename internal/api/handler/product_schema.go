package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type productRequest struct {
	Name          string   `json:"name"           validate:"required"`
	Description   string   `json:"description"    validate:"required"`
	Category      string   `json:"category"       validate:"required"`
	Price         float64  `json:"price"          validate:"required,gt=0"`
	DiscountPrice float64  `json:"discount_price" validate:"omitempty,gt=0"`
	ImageURLs     []string `json:"image_urls"`
	Badges        []string `json:"badges"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// service changes.

type productResponse struct {
	ID            string    `json:"id"`
	ProducerID    string    `json:"producer_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discount_price,omitempty"`
	ImageURLs     []string  `json:"image_urls,omitempty"`
	Badges        []string  `json:"badges,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listProductsResponse struct {
	Data       []productResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type reviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type listReviewsResponse struct {
	Data       []reviewResponse   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
