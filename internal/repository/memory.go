package repository

import (
	"context"
	"sync"
	"time"

	"items-api/internal/model"

	"github.com/rs/zerolog"
)

// memoryItemRepository implements ItemRepository with an in-process slice.
// It is the default store when no DATABASE_URL is configured and is also
// handy in tests. All state is lost on restart.
type memoryItemRepository struct {
	mu     sync.RWMutex
	items  []model.Item
	nextID int64
	logger zerolog.Logger
}

// NewMemoryItemRepository creates a new in-memory item repository.
func NewMemoryItemRepository(logger zerolog.Logger) ItemRepository {
	return &memoryItemRepository{
		nextID: 1,
		logger: logger.With().Str("repository", "memory").Logger(),
	}
}

// List retrieves items with pagination support, ordered by id.
func (r *memoryItemRepository) List(ctx context.Context, skip, limit int) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if skip >= len(r.items) {
		return nil, nil
	}

	end := skip + limit
	if end > len(r.items) {
		end = len(r.items)
	}

	// Copy the slice so callers never alias the store's backing array.
	out := make([]model.Item, end-skip)
	copy(out, r.items[skip:end])
	return out, nil
}

// GetByID retrieves a single item by its ID.
func (r *memoryItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		it := r.items[idx]
		return &it, nil
	}

	r.logger.Debug().Int64("item_id", id).Msg("item not found")
	return nil, nil
}

// Create inserts a new item and fills in its ID and CreatedAt.
func (r *memoryItemRepository) Create(ctx context.Context, item *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	item.CreatedAt = time.Now().UTC()
	r.nextID++

	r.items = append(r.items, *item)
	return nil
}

// Update replaces the stored row for item.ID with the given values.
func (r *memoryItemRepository) Update(ctx context.Context, item *model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(item.ID)
	if idx < 0 {
		r.logger.Debug().Int64("item_id", item.ID).Msg("item not found for update")
		return model.ErrItemNotFound
	}

	// CreatedAt is immutable.
	item.CreatedAt = r.items[idx].CreatedAt
	r.items[idx] = *item
	return nil
}

// Delete removes the item with the given id.
func (r *memoryItemRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		r.logger.Debug().Int64("item_id", id).Msg("item not found for delete")
		return model.ErrItemNotFound
	}

	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return nil
}

// Stats computes aggregate price statistics with a linear scan.
func (r *memoryItemRepository) Stats(ctx context.Context) (*model.ItemStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &model.ItemStats{TotalItems: int64(len(r.items))}
	if len(r.items) == 0 {
		return stats, nil
	}

	var sum float64
	min := r.items[0].Price
	max := r.items[0].Price
	for _, it := range r.items {
		sum += it.Price
		if it.Price < min {
			min = it.Price
		}
		if it.Price > max {
			max = it.Price
		}
	}

	stats.AveragePrice = sum / float64(len(r.items))
	stats.MinPrice = &min
	stats.MaxPrice = &max
	return stats, nil
}

// indexOf returns the position of the item with the given id, or -1.
// Callers must hold the lock.
func (r *memoryItemRepository) indexOf(id int64) int {
	for i := range r.items {
		if r.items[i].ID == id {
			return i
		}
	}
	return -1
}
