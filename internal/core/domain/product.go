package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a listing published by a producer.
type Product struct {
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

// EditableBy reports whether the given principal may modify the product.
// Producers own their listings; admins may edit anything.
func (p *Product) EditableBy(userID string, role Role) bool {
	return role == RoleAdmin || p.ProducerID == userID
}
