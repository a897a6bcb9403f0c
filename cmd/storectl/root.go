package main

import (
	"produce-kart/internal/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "storectl",
		Short: "Maintenance commands for the produce storefront",
		Long: `storectl manages the storefront database outside the API server.

Examples:
  storectl migrate                       # apply pending PostgreSQL migrations
  storectl seed --file catalog.yaml      # load products, offers and merits
  storectl hash-password                 # bcrypt hash for ADMIN_PASSWORD_HASH
  storectl ping --redis                  # check database and Redis`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newHashPasswordCmd(),
		newPingCmd(),
	)
	return root
}

// loadTools reads the maintenance configuration and builds a logger for a
// subcommand.
func loadTools(command string) (*config.ToolsConfig, zerolog.Logger, error) {
	cfg, err := config.LoadTools()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := config.NewLogger(cfg.Logger, "storectl").With().Str("command", command).Logger()
	return cfg, logger, nil
}
