package media

import (
	"context"
	"fmt"

	"produce-kart/internal/config"

	"github.com/rs/zerolog"
)

// New builds the configured uploader chain.
func New(ctx context.Context, cfg config.MediaConfig, logger zerolog.Logger) (Uploader, error) {
	primary, err := newProvider(ctx, cfg.Provider, cfg, logger)
	if err != nil {
		return nil, err
	}

	var secondary Uploader
	if cfg.Fallback != "" {
		secondary, err = newProvider(ctx, cfg.Fallback, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	return NewFallbackUploader(primary, secondary, logger), nil
}

func newProvider(ctx context.Context, name string, cfg config.MediaConfig, logger zerolog.Logger) (Uploader, error) {
	switch name {
	case config.MediaCloudinary:
		return NewCloudinaryUploader(cfg.Cloudinary, logger)
	case config.MediaS3:
		return NewS3Uploader(ctx, cfg.S3, logger)
	default:
		return nil, fmt.Errorf("unknown media provider %q", name)
	}
}
