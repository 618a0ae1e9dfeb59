package repository

import (
	"context"
	"fmt"

	"items-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresItemRepository implements the ItemRepository interface using PostgreSQL.
type postgresItemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresItemRepository creates a new PostgreSQL-backed item repository.
func NewPostgresItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) ItemRepository {
	return &postgresItemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "postgres").Logger(),
	}
}

// List retrieves items with pagination support, ordered by id.
func (r *postgresItemRepository) List(ctx context.Context, skip, limit int) ([]model.Item, error) {
	query := `
		SELECT id, name, description, price, category, created_at
		FROM items
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		r.logger.Error().Err(err).
			Int("skip", skip).
			Int("limit", limit).
			Msg("failed to query items")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan item row")
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating item rows")
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *postgresItemRepository) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	query := `
		SELECT id, name, description, price, category, created_at
		FROM items
		WHERE id = $1
	`

	var it model.Item
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Category, &it.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("item_id", id).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return &it, nil
}

// Create inserts a new item and fills in its ID and CreatedAt.
func (r *postgresItemRepository) Create(ctx context.Context, item *model.Item) error {
	query := `
		INSERT INTO items (name, description, price, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, item.Name, item.Description, item.Price, item.Category).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to insert item")
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// Update replaces the stored row for item.ID with the given values.
func (r *postgresItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
		UPDATE items
		SET name = $2, description = $3, price = $4, category = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, item.ID, item.Name, item.Description, item.Price, item.Category)
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", item.ID).Msg("failed to update item")
		return fmt.Errorf("failed to update item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("item_id", item.ID).Msg("item not found for update")
		return model.ErrItemNotFound
	}

	return nil
}

// Delete removes the item with the given id.
func (r *postgresItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM items WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Int64("item_id", id).Msg("item not found for delete")
		return model.ErrItemNotFound
	}

	return nil
}

// Stats computes aggregate price statistics by delegating to PostgreSQL.
// AVG/MIN/MAX return NULL for an empty table, hence the pointer scans.
func (r *postgresItemRepository) Stats(ctx context.Context) (*model.ItemStats, error) {
	query := `SELECT COUNT(id), AVG(price), MIN(price), MAX(price) FROM items`

	var (
		count         int64
		avg, min, max *float64
	)
	if err := r.pool.QueryRow(ctx, query).Scan(&count, &avg, &min, &max); err != nil {
		r.logger.Error().Err(err).Msg("failed to query item stats")
		return nil, fmt.Errorf("failed to query item stats: %w", err)
	}

	stats := &model.ItemStats{
		TotalItems: count,
		MinPrice:   min,
		MaxPrice:   max,
	}
	if avg != nil {
		stats.AveragePrice = *avg
	}

	return stats, nil
}
