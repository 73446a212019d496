package domain

import (
	"errors"
	"time"
)

var ErrReviewNotFound = errors.New("review not found")
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Review is a buyer's rating of a product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidRating reports whether a rating falls in the accepted 1..5 range.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
