package service

import (
	"context"
	"errors"

	"produce-kart/internal/media"
	"produce-kart/internal/model"

	"github.com/rs/zerolog"
)

type uploadService struct {
	uploader media.Uploader
	maxSize  int64
	logger   zerolog.Logger
}

// NewUploadService creates an UploadService that rejects non-images and
// files larger than maxSize bytes.
func NewUploadService(uploader media.Uploader, maxSize int64, logger zerolog.Logger) UploadService {
	return &uploadService{
		uploader: uploader,
		maxSize:  maxSize,
		logger:   logger.With().Str("service", "upload").Logger(),
	}
}

func (s *uploadService) Upload(ctx context.Context, img media.Image) (string, error) {
	valid, err := media.Validate(img, s.maxSize)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			return "", domainErr
		}
		s.logger.Error().Err(err).Str("filename", img.Filename).Msg("failed to read upload")
		return "", model.ErrUploadFailed
	}

	url, err := s.uploader.Upload(ctx, valid)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", img.Filename).Msg("image upload failed")
		return "", model.ErrUploadFailed
	}

	s.logger.Debug().Str("filename", img.Filename).Str("url", url).Msg("image uploaded")
	return url, nil
}

// uploadOptional uploads img when present and returns fallback otherwise.
func uploadOptional(ctx context.Context, uploads UploadService, img *media.Image, fallback string) (string, error) {
	if img == nil {
		return fallback, nil
	}
	return uploads.Upload(ctx, *img)
}
