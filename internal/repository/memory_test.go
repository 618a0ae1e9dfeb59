package repository

import (
	"context"
	"testing"

	"items-api/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryRepo() ItemRepository {
	return NewMemoryItemRepository(zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func seedItems(t *testing.T, repo ItemRepository, names []string, prices []float64) []model.Item {
	t.Helper()
	ctx := context.Background()

	items := make([]model.Item, 0, len(names))
	for i, name := range names {
		item := &model.Item{Name: name, Price: prices[i]}
		require.NoError(t, repo.Create(ctx, item))
		items = append(items, *item)
	}
	return items
}

func TestMemoryRepository_ListEmpty(t *testing.T) {
	repo := newMemoryRepo()

	items, err := repo.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMemoryRepository_ListPagination(t *testing.T) {
	repo := newMemoryRepo()
	ctx := context.Background()

	seedItems(t, repo, []string{"A", "B", "C"}, []float64{1.0, 2.0, 3.0})

	t.Run("Middle slice", func(t *testing.T) {
		items, err := repo.List(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "B", items[0].Name)
		assert.Equal(t, "C", items[1].Name)
	})

	t.Run("Limit beyond end", func(t *testing.T) {
		items, err := repo.List(ctx, 2, 10)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "C", items[0].Name)
	})

	t.Run("Skip beyond end", func(t *testing.T) {
		items, err := repo.List(ctx, 10, 10)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestMemoryRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo := newMemoryRepo()

	items := seedItems(t, repo, []string{"A", "B"}, []float64{1.0, 2.0})

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.False(t, items[0].CreatedAt.IsZero())
}

func TestMemoryRepository_CreateRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	ctx := context.Background()

	item := &model.Item{
		Name:        "Widget",
		Description: strPtr("A nice widget"),
		Price:       9.99,
	}
	require.NoError(t, repo.Create(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Widget", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "A nice widget", *got.Description)
	assert.Equal(t, 9.99, got.Price)
	assert.Nil(t, got.Category)
}

func TestMemoryRepository_GetByIDNotFound(t *testing.T) {
	repo := newMemoryRepo()

	got, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRepository_Update(t *testing.T) {
	repo := newMemoryRepo()
	ctx := context.Background()

	seeded := seedItems(t, repo, []string{"A"}, []float64{1.0})

	t.Run("Replaces stored values", func(t *testing.T) {
		updated := seeded[0]
		updated.Name = "A2"
		updated.Price = 5.5
		require.NoError(t, repo.Update(ctx, &updated))

		got, err := repo.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "A2", got.Name)
		assert.Equal(t, 5.5, got.Price)
		assert.Equal(t, seeded[0].CreatedAt, got.CreatedAt)
	})

	t.Run("Not found", func(t *testing.T) {
		missing := model.Item{ID: 99, Name: "ghost", Price: 1.0}
		err := repo.Update(ctx, &missing)
		require.ErrorIs(t, err, model.ErrItemNotFound)
	})
}

func TestMemoryRepository_Delete(t *testing.T) {
	repo := newMemoryRepo()
	ctx := context.Background()

	seeded := seedItems(t, repo, []string{"A", "B"}, []float64{1.0, 2.0})

	require.NoError(t, repo.Delete(ctx, seeded[0].ID))

	got, err := repo.GetByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// The other item survives.
	got, err = repo.GetByID(ctx, seeded[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "B", got.Name)

	// Deleting twice reports not found.
	err = repo.Delete(ctx, seeded[0].ID)
	require.ErrorIs(t, err, model.ErrItemNotFound)
}

func TestMemoryRepository_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty store", func(t *testing.T) {
		repo := newMemoryRepo()

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalItems)
		assert.Equal(t, 0.0, stats.AveragePrice)
		assert.Nil(t, stats.MinPrice)
		assert.Nil(t, stats.MaxPrice)
	})

	t.Run("With items", func(t *testing.T) {
		repo := newMemoryRepo()
		seedItems(t, repo, []string{"A", "B", "C"}, []float64{1.0, 2.0, 6.0})

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.TotalItems)
		assert.Equal(t, 3.0, stats.AveragePrice)
		require.NotNil(t, stats.MinPrice)
		assert.Equal(t, 1.0, *stats.MinPrice)
		require.NotNil(t, stats.MaxPrice)
		assert.Equal(t, 6.0, *stats.MaxPrice)
	})
}
