package model

import "time"

// Item represents a single record in the items table.
type Item struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Category    *string   `json:"category" db:"category"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// CreateItemRequest is the request body for POST /items.
// Name and Price are pointers so a missing field can be told apart
// from an explicit zero value during validation.
type CreateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

// UpdateItemRequest is the request body for PATCH /items/{id}.
// Only fields present in the body are applied; nil means "leave unchanged".
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
}

// ItemStats holds aggregate price statistics across all items.
// MinPrice and MaxPrice are null when no items exist.
type ItemStats struct {
	TotalItems   int64    `json:"total_items"`
	AveragePrice float64  `json:"average_price"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
}
