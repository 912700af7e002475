package models

import "time"

// Product is the model for the 'products' table.
type Product struct {
	ID          int64  `json:"id" db:"id"`
	SellerID    int64  `json:"sellerId" db:"seller_id"`
	Title       string `json:"title" db:"title"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`

	Price    float64 `json:"price" db:"price"`
	Stock    int     `json:"stock" db:"stock"` // never stored negative
	Category string  `json:"category" db:"category"`
	Image    string  `json:"image" db:"image"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
