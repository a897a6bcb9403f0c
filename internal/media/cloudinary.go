package media

import (
	"context"
	"errors"
	"fmt"

	"produce-kart/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cloudinaryAPI is the part of the Cloudinary upload API used here.
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	UnsignedUpload(ctx context.Context, file interface{}, uploadPreset string, params uploader.UploadParams) (*uploader.UploadResult, error)
}

type cloudinaryUploader struct {
	api    cloudinaryAPI
	cfg    config.CloudinaryConfig
	logger zerolog.Logger
}

// NewCloudinaryUploader creates an uploader for Cloudinary. Without an API
// secret it falls back to unsigned uploads with the configured preset.
func NewCloudinaryUploader(cfg config.CloudinaryConfig, logger zerolog.Logger) (Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return newCloudinaryUploader(&cld.Upload, cfg, logger), nil
}

func newCloudinaryUploader(api cloudinaryAPI, cfg config.CloudinaryConfig, logger zerolog.Logger) *cloudinaryUploader {
	return &cloudinaryUploader{
		api:    api,
		cfg:    cfg,
		logger: logger.With().Str("component", "cloudinary-uploader").Logger(),
	}
}

func (u *cloudinaryUploader) Upload(ctx context.Context, img Image) (string, error) {
	params := uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   u.cfg.Folder,
	}

	var (
		res *uploader.UploadResult
		err error
	)
	if u.cfg.APISecret == "" {
		res, err = u.api.UnsignedUpload(ctx, img.Body, u.cfg.UploadPreset, params)
	} else {
		res, err = u.api.Upload(ctx, img.Body, params)
	}
	if err == nil && res != nil && res.Error.Message != "" {
		err = errors.New(res.Error.Message)
	}
	if err == nil && (res == nil || res.SecureURL == "") {
		err = errors.New("cloudinary returned no URL")
	}
	if err != nil {
		u.logger.Error().Err(err).Str("filename", img.Filename).Msg("failed to upload image")
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}

	u.logger.Info().
		Str("filename", img.Filename).
		Str("public_id", res.PublicID).
		Msg("image uploaded")

	return res.SecureURL, nil
}
