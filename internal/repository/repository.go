package repository

import (
	"context"

	"items-api/internal/model"
)

// ItemRepository defines the interface for item data access operations.
type ItemRepository interface {
	// List retrieves items with pagination support, ordered by id.
	List(ctx context.Context, skip, limit int) ([]model.Item, error)

	// GetByID retrieves a single item by its ID. Returns (nil, nil)
	// when no item with the given id exists.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// Create inserts a new item and fills in its ID and CreatedAt.
	Create(ctx context.Context, item *model.Item) error

	// Update replaces the stored row for item.ID with the given values.
	// Returns model.ErrItemNotFound when the id does not exist.
	Update(ctx context.Context, item *model.Item) error

	// Delete removes the item with the given id.
	// Returns model.ErrItemNotFound when the id does not exist.
	Delete(ctx context.Context, id int64) error

	// Stats computes aggregate price statistics across all items.
	Stats(ctx context.Context) (*model.ItemStats, error)
}
