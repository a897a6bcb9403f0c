package media

import (
	"context"

	"produce-kart/internal/model"

	"github.com/rs/zerolog"
)

// fallbackUploader tries the primary uploader first, then the secondary one.
type fallbackUploader struct {
	primary   Uploader
	secondary Uploader
	logger    zerolog.Logger
}

// NewFallbackUploader wraps primary and an optional secondary uploader. Any
// failure is reported as model.ErrUploadFailed after both attempts.
func NewFallbackUploader(primary, secondary Uploader, logger zerolog.Logger) Uploader {
	return &fallbackUploader{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-uploader").Logger(),
	}
}

func (u *fallbackUploader) Upload(ctx context.Context, img Image) (string, error) {
	url, err := u.primary.Upload(ctx, img)
	if err == nil {
		return url, nil
	}

	if u.secondary == nil {
		return "", model.ErrUploadFailed
	}

	u.logger.Warn().
		Err(err).
		Str("filename", img.Filename).
		Msg("primary upload failed, trying secondary")

	rewind(img)
	url, err = u.secondary.Upload(ctx, img)
	if err != nil {
		u.logger.Error().Err(err).Str("filename", img.Filename).Msg("secondary upload failed")
		return "", model.ErrUploadFailed
	}
	return url, nil
}
