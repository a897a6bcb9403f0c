package main

import (
	"context"
	"fmt"
	"time"

	"produce-kart/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	var (
		checkRedis bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the configured database and Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadTools("ping")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			repos, err := repository.Open(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer repos.Close()
			if err := repos.Ping(ctx); err != nil {
				return fmt.Errorf("database ping failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", cfg.Database.Driver)

			if !checkRedis {
				return nil
			}
			if cfg.Redis.URL == "" {
				return fmt.Errorf("REDIS_URL is not set")
			}
			opts, err := redis.ParseURL(cfg.Redis.URL)
			if err != nil {
				return fmt.Errorf("invalid redis URL: %w", err)
			}
			client := redis.NewClient(opts)
			defer client.Close()
			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis ping failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "redis: ok")
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkRedis, "redis", false, "also check REDIS_URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall timeout")
	return cmd
}
