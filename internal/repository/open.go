package repository

import (
	"context"
	"fmt"

	"produce-kart/internal/config"
	"produce-kart/internal/database"

	"github.com/rs/zerolog"
)

// Repositories bundles the storage backends for one database driver.
type Repositories struct {
	Products ProductRepository
	Offers   OfferRepository
	Settings SettingsRepository

	// Ping checks that the underlying database is reachable.
	Ping func(ctx context.Context) error

	close func()
}

// Close releases the underlying connections.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open connects to the database selected by cfg.Driver and returns its
// repositories. The postgres schema is migrated when cfg.AutoMigrate is set;
// mongo indexes are always ensured.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Repositories{
			Products: NewProductRepository(pool, logger),
			Offers:   NewOfferRepository(pool, logger),
			Settings: NewSettingsRepository(pool, logger),
			Ping:     pool.Ping,
			close:    pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := database.NewMongo(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		return &Repositories{
			Products: NewMongoProductRepository(db, logger),
			Offers:   NewMongoOfferRepository(db, logger),
			Settings: NewMongoSettingsRepository(db, logger),
			Ping: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			},
			close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Error().Err(err).Msg("failed to disconnect from mongo")
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
