package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"produce-kart/internal/config"
	"produce-kart/internal/merchant"
	"produce-kart/internal/middleware"

	"google.golang.org/api/option"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadMerchantSync()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, "merchant-sync")
	logger.Info().Uint64("merchant_id", cfg.MerchantID).Msg("starting merchant sync function")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	syncer, err := merchant.NewSyncer(ctx, *cfg, logger, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/syncProduct", merchant.NewHandler(syncer, cfg.AllowedOrigin, logger))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	var h http.Handler = mux
	if cfg.APIKey != "" {
		h = middleware.APIKeyAuth(cfg.APIKey, logger)(h)
	} else {
		logger.Warn().Msg("MERCHANT_SYNC_API_KEY not set, sync endpoint is unauthenticated")
	}
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("address", server.Addr).Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
