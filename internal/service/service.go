package service

import (
	"context"

	"items-api/internal/model"
)

// ItemService defines operations for item management.
type ItemService interface {
	// List retrieves items with pagination.
	List(ctx context.Context, skip, limit int) ([]model.Item, error)

	// GetByID retrieves a single item by ID.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// Create validates the request and stores a new item.
	Create(ctx context.Context, req *model.CreateItemRequest) (*model.Item, error)

	// Update applies the fields present in the request to an existing item.
	Update(ctx context.Context, id int64, req *model.UpdateItemRequest) (*model.Item, error)

	// Delete removes an item by ID.
	Delete(ctx context.Context, id int64) error

	// Stats computes aggregate price statistics across all items.
	Stats(ctx context.Context) (*model.ItemStats, error)
}
