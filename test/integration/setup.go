package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"produce-kart/internal/config"
	"produce-kart/internal/repository"
	"produce-kart/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance opened the way the API opens
// its storage.
type TestDB struct {
	Container *postgres.PostgresContainer
	Repos     *repository.Repositories
	Pool      *pgxpool.Pool // direct access for cleanup
}

// SetupTestDB starts a PostgreSQL container and opens the repositories
// against it with migrations applied.
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
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbConfig := config.DatabaseConfig{
		Driver:          config.DriverPostgres,
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
		AutoMigrate:     true,
	}

	repos, err := repository.Open(ctx, dbConfig, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open repositories: %v", err)
	}

	pool, err := pgxpool.New(ctx, dbConfig.ConnectionString())
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		repos.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Repos:     repos,
		Pool:      pool,
	}
}

// testCatalog is the storefront fixture used by the API tests.
func testCatalog() *seed.Catalog {
	return &seed.Catalog{
		Products: []seed.ProductEntry{
			{ID: "apple", Name: "Apple", Category: "fruit", Type: "kg", Price: 8},
			{ID: "tomato", Name: "Tomato", Category: "vegetable", Type: "kg", Price: 5, OfferPrice: 4},
			{
				ID: "mango", Name: "Mango", Category: "fruit", Type: "box",
				BoxSizes: []seed.BoxSizeEntry{
					{Size: "5kg", Price: 30, OfferPrice: 25},
					{Size: "10kg", Price: 55},
				},
			},
		},
		Offers: []seed.OfferEntry{
			{ID: "offer-apple", ProductID: "apple", Title: "Apple week", Discount: 25, Price: 8, EndDate: "2099-12-31"},
			{ID: "offer-old", ProductID: "tomato", Title: "Last season", Discount: 10, Price: 5, EndDate: "2000-01-01"},
		},
		Merits: []seed.MeritEntry{
			{ID: "fresh", Title: "Farm fresh", Description: "Picked this morning"},
		},
	}
}

// SeedCatalog writes the test catalog through the seeder.
func SeedCatalog(t *testing.T, db *TestDB) {
	t.Helper()

	_, err := seed.NewSeeder(db.Repos.Products, db.Repos.Offers, db.Repos.Settings, zerolog.Nop()).
		Apply(context.Background(), testCatalog())
	require.NoError(t, err)
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"merits", "offer_settings", "offers", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
