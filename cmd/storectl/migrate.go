package main

import (
	"fmt"

	"produce-kart/internal/config"
	"produce-kart/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadTools("migrate")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			switch cfg.Database.Driver {
			case config.DriverPostgres:
				pool, err := database.NewPool(ctx, cfg.Database, logger)
				if err != nil {
					return err
				}
				defer pool.Close()
				return database.Migrate(ctx, pool, logger)
			case config.DriverMongo:
				client, db, err := database.NewMongo(ctx, cfg.Database, logger)
				if err != nil {
					return err
				}
				defer func() { _ = client.Disconnect(ctx) }()
				if err := database.EnsureIndexes(ctx, db); err != nil {
					return fmt.Errorf("failed to ensure mongo indexes: %w", err)
				}
				logger.Info().Msg("mongo indexes ensured")
				return nil
			default:
				return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
			}
		},
	}
}
