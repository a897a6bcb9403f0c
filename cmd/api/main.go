package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"produce-kart/internal/auth"
	"produce-kart/internal/cart"
	"produce-kart/internal/config"
	"produce-kart/internal/handler"
	"produce-kart/internal/media"
	"produce-kart/internal/merchant"
	"produce-kart/internal/repository"
	"produce-kart/internal/router"
	"produce-kart/internal/service"
	"produce-kart/internal/telemetry"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, "api")
	logger.Info().Msg("starting produce-kart API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to flush traces")
		}
	}()

	repos, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise database: %w", err)
	}
	defer repos.Close()

	// Carts and sessions live in Redis when configured, in memory otherwise
	var (
		carts    cart.Store
		sessions auth.SessionStore
	)
	if cfg.Redis.URL != "" {
		client, err := newRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer client.Close()

		carts = cart.NewRedisStore(client, cfg.Redis.CartTTL, logger)
		sessions = auth.NewRedisSessionStore(client)
		logger.Info().Msg("using redis for carts and sessions")
	} else {
		carts = cart.NewMemoryStore()
		sessions = auth.NewMemorySessionStore()
		logger.Warn().Msg("REDIS_URL not set, carts and sessions are kept in memory")
	}

	uploader, err := media.New(ctx, cfg.Media, logger)
	if err != nil {
		return fmt.Errorf("failed to initialise image hosting: %w", err)
	}

	provider, err := auth.NewProvider(ctx, cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialise auth provider: %w", err)
	}
	authenticator := auth.NewAuthenticator(provider, sessions, cfg.Auth.SessionTTL, logger)
	unsubscribe := authenticator.Subscribe(func(ev auth.Event) {
		logger.Info().Str("event", string(ev.Type)).Str("email", ev.Email).Msg("admin session event")
	})
	defer unsubscribe()

	var notifier service.CatalogNotifier = service.NopNotifier{}
	if cfg.Merchant.Enabled {
		n := merchant.NewNotifier(cfg.Merchant.SyncURL, cfg.Merchant.APIKey, cfg.Merchant.Timeout, logger)
		defer n.Close()
		notifier = n
		logger.Info().Str("url", cfg.Merchant.SyncURL).Msg("merchant catalogue sync enabled")
	}

	// Initialize services
	phone := cfg.Store.WhatsAppPhone
	uploadService := service.NewUploadService(uploader, cfg.Media.MaxSizeBytes, logger)
	productService := service.NewProductService(repos.Products, uploadService, notifier, phone, logger)
	offerService := service.NewOfferService(repos.Offers, repos.Products, repos.Settings, uploadService, logger)
	settingsService := service.NewSettingsService(repos.Settings, uploadService, logger)
	cartService := service.NewCartService(carts, repos.Products, repos.Offers, phone, logger)

	// Multipart forms carry the image plus a little form data
	formLimit := cfg.Media.MaxSizeBytes + 1<<20

	mux := router.New(router.Handlers{
		Product:  handler.NewProductHandler(productService, formLimit, logger),
		Offer:    handler.NewOfferHandler(offerService, formLimit, logger),
		Settings: handler.NewSettingsHandler(settingsService, formLimit, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		Auth:     handler.NewAuthHandler(authenticator, logger),
		Upload:   handler.NewUploadHandler(uploadService, formLimit, logger),
	}, router.Options{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Sessions:      authenticator,
	}, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return serve(server, logger)
}

func newRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// serve runs server until it fails or the process is asked to stop.
func serve(server *http.Server, logger zerolog.Logger) error {
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", server.Addr).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
