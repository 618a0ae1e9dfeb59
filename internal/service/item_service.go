package service

import (
	"context"
	"fmt"
	"math"

	"items-api/internal/model"
	"items-api/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// itemService implements ItemService.
type itemService struct {
	repo   repository.ItemRepository
	logger zerolog.Logger
}

// NewItemService creates a new item service.
func NewItemService(repo repository.ItemRepository, logger zerolog.Logger) ItemService {
	return &itemService{
		repo:   repo,
		logger: logger.With().Str("service", "item").Logger(),
	}
}

// List retrieves items with pagination.
func (s *itemService) List(ctx context.Context, skip, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if skip < 0 {
		skip = 0
	}

	items, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		s.logger.Error().Err(err).
			Int("skip", skip).
			Int("limit", limit).
			Msg("failed to list items")
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	// The list endpoint always serialises as a JSON array.
	if items == nil {
		items = []model.Item{}
	}

	s.logger.Debug().
		Int("count", len(items)).
		Int("skip", skip).
		Int("limit", limit).
		Msg("listed items")

	return items, nil
}

// GetByID retrieves a single item by ID.
func (s *itemService) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("item_id", id).Msg("failed to get item by ID")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if item == nil {
		s.logger.Debug().Int64("item_id", id).Msg("item not found")
		return nil, model.ErrItemNotFound
	}

	return item, nil
}

// Create validates the request and stores a new item.
func (s *itemService) Create(ctx context.Context, req *model.CreateItemRequest) (*model.Item, error) {
	if err := validateCreate(req); err != nil {
		s.logger.Debug().Err(err).Msg("create request failed validation")
		return nil, err
	}

	item := &model.Item{
		Name:        *req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create item")
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info().Int64("item_id", item.ID).Str("name", item.Name).Msg("item created")

	return item, nil
}

// Update applies the fields present in the request to an existing item.
// Fields absent from the request body keep their stored values.
func (s *itemService) Update(ctx context.Context, id int64, req *model.UpdateItemRequest) (*model.Item, error) {
	if err := validateUpdate(req); err != nil {
		s.logger.Debug().Err(err).Int64("item_id", id).Msg("update request failed validation")
		return nil, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("item_id", id).Msg("failed to load item for update")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		s.logger.Debug().Int64("item_id", id).Msg("item not found for update")
		return nil, model.ErrItemNotFound
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Category != nil {
		item.Category = req.Category
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if err == model.ErrItemNotFound {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("item_id", id).Msg("failed to update item")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info().Int64("item_id", id).Msg("item updated")

	return item, nil
}

// Delete removes an item by ID.
func (s *itemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == model.ErrItemNotFound {
			s.logger.Debug().Int64("item_id", id).Msg("item not found for delete")
			return err
		}
		s.logger.Error().Err(err).Int64("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.Info().Int64("item_id", id).Msg("item deleted")

	return nil
}

// Stats computes aggregate price statistics across all items.
func (s *itemService) Stats(ctx context.Context) (*model.ItemStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute item stats")
		return nil, fmt.Errorf("failed to compute item stats: %w", err)
	}

	stats.AveragePrice = math.Round(stats.AveragePrice*100) / 100

	return stats, nil
}

// validateCreate checks the required fields of a create request.
func validateCreate(req *model.CreateItemRequest) error {
	if req.Name == nil || *req.Name == "" {
		return model.NewValidationError("name", "name is required")
	}
	if req.Price == nil {
		return model.NewValidationError("price", "price is required")
	}
	return nil
}

// validateUpdate checks the fields present in a partial update request.
func validateUpdate(req *model.UpdateItemRequest) error {
	if req.Name != nil && *req.Name == "" {
		return model.NewValidationError("name", "name must not be empty")
	}
	return nil
}
