package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"items-api/internal/database"
	"items-api/internal/handler"
	"items-api/internal/repository"
	"items-api/internal/router"
	"items-api/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestAPIKey is the key the test server is configured with.
const TestAPIKey = "integration-test-key"

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool,
// with the items schema applied.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	logger := zerolog.Nop()
	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SetupTestServer wires the full HTTP stack over the given database.
func SetupTestServer(t *testing.T, db *TestDB) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	repo := repository.NewPostgresItemRepository(db.Pool, logger)
	svc := service.NewItemService(repo, logger)
	h := handler.NewItemHandler(svc, logger)

	srv := httptest.NewServer(router.New(h, TestAPIKey, logger))
	t.Cleanup(srv.Close)
	return srv
}

// TruncateItems clears the items table between test cases.
func TruncateItems(t *testing.T, db *TestDB) {
	t.Helper()

	if _, err := db.Pool.Exec(context.Background(), "TRUNCATE items RESTART IDENTITY"); err != nil {
		t.Fatalf("failed to truncate items: %v", err)
	}
}
