package service

import (
	"context"
	"fmt"

	"produce-kart/internal/media"
	"produce-kart/internal/model"
	"produce-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type settingsService struct {
	settingsRepo repository.SettingsRepository
	uploads      UploadService
	logger       zerolog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo repository.SettingsRepository, uploads UploadService, logger zerolog.Logger) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		uploads:      uploads,
		logger:       logger.With().Str("service", "settings").Logger(),
	}
}

// loadSettings reads the settings and writes the defaults if none exist.
func loadSettings(ctx context.Context, repo repository.SettingsRepository, logger zerolog.Logger) (*model.OfferSettings, error) {
	settings, err := repo.Get(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to get offer settings")
		return nil, fmt.Errorf("failed to get offer settings: %w", err)
	}
	if settings != nil {
		return settings, nil
	}

	settings = model.DefaultOfferSettings()
	if err := repo.Save(ctx, settings); err != nil {
		logger.Error().Err(err).Msg("failed to create default offer settings")
		return nil, fmt.Errorf("failed to create offer settings: %w", err)
	}
	logger.Info().Msg("created default offer settings")
	return settings, nil
}

func (s *settingsService) Get(ctx context.Context) (*model.OfferSettings, error) {
	return loadSettings(ctx, s.settingsRepo, s.logger)
}

func (s *settingsService) SetOfferWeek(ctx context.Context, enabled bool) (*model.OfferSettings, error) {
	if err := s.settingsRepo.SetOfferWeek(ctx, enabled); err != nil {
		s.logger.Error().Err(err).Bool("is_offer_week", enabled).Msg("failed to toggle offer week")
		return nil, fmt.Errorf("failed to update offer week: %w", err)
	}

	s.logger.Info().Bool("is_offer_week", enabled).Msg("offer week toggled")
	return s.Get(ctx)
}

func (s *settingsService) CreateMerit(ctx context.Context, in model.MeritInput, img *media.Image) (*model.Merit, error) {
	merit := model.Merit{ID: uuid.NewString()}
	if err := in.Apply(&merit); err != nil {
		return nil, err
	}
	url, err := uploadOptional(ctx, s.uploads, img, merit.ImageURL)
	if err != nil {
		return nil, err
	}
	merit.ImageURL = url

	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	settings.Merits = append(settings.Merits, merit)

	if err := s.save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info().Str("merit_id", merit.ID).Msg("merit created")
	return &merit, nil
}

func (s *settingsService) UpdateMerit(ctx context.Context, id string, in model.MeritInput, img *media.Image) (*model.Merit, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	idx := meritIndex(settings.Merits, id)
	if idx < 0 {
		return nil, model.ErrMeritNotFound
	}

	merit := settings.Merits[idx]
	if err := in.Apply(&merit); err != nil {
		return nil, err
	}
	url, err := uploadOptional(ctx, s.uploads, img, merit.ImageURL)
	if err != nil {
		return nil, err
	}
	merit.ImageURL = url
	settings.Merits[idx] = merit

	if err := s.save(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info().Str("merit_id", id).Msg("merit updated")
	return &merit, nil
}

func (s *settingsService) DeleteMerit(ctx context.Context, id string) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}

	idx := meritIndex(settings.Merits, id)
	if idx < 0 {
		return model.ErrMeritNotFound
	}
	settings.Merits = append(settings.Merits[:idx], settings.Merits[idx+1:]...)

	if err := s.save(ctx, settings); err != nil {
		return err
	}

	s.logger.Info().Str("merit_id", id).Msg("merit deleted")
	return nil
}

func (s *settingsService) save(ctx context.Context, settings *model.OfferSettings) error {
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		s.logger.Error().Err(err).Msg("failed to save offer settings")
		return fmt.Errorf("failed to save offer settings: %w", err)
	}
	return nil
}

func meritIndex(merits []model.Merit, id string) int {
	for i, m := range merits {
		if m.ID == id {
			return i
		}
	}
	return -1
}
