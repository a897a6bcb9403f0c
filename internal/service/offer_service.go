package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"produce-kart/internal/media"
	"produce-kart/internal/model"
	"produce-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// landingOfferLimit is the number of offers shown on the landing page.
const landingOfferLimit = 3

type offerService struct {
	offerRepo    repository.OfferRepository
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
	uploads      UploadService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewOfferService creates a new offer service.
func NewOfferService(
	offerRepo repository.OfferRepository,
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
	uploads UploadService,
	logger zerolog.Logger,
) OfferService {
	return &offerService{
		offerRepo:    offerRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		uploads:      uploads,
		logger:       logger.With().Str("service", "offer").Logger(),
		now:          time.Now,
	}
}

func (s *offerService) Landing(ctx context.Context) (*model.LandingView, error) {
	var (
		settings *model.OfferSettings
		offers   []model.Offer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		settings, err = loadSettings(gctx, s.settingsRepo, s.logger)
		return err
	})
	g.Go(func() error {
		var err error
		offers, err = s.offerRepo.List(gctx, landingOfferLimit)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to list landing offers")
			return fmt.Errorf("failed to get offers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if settings.IsOfferWeek {
		return &model.LandingView{Mode: model.LandingModeMerits, Merits: settings.Merits}, nil
	}

	return &model.LandingView{Mode: model.LandingModeOffers, Offers: s.views(offers)}, nil
}

func (s *offerService) List(ctx context.Context) ([]model.OfferView, error) {
	offers, err := s.offerRepo.List(ctx, 0)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list offers")
		return nil, fmt.Errorf("failed to get offers: %w", err)
	}
	return s.views(offers), nil
}

func (s *offerService) GetByID(ctx context.Context, id string) (*model.OfferView, error) {
	offer, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := model.NewOfferView(*offer, s.now())
	return &view, nil
}

func (s *offerService) Create(ctx context.Context, in model.OfferInput, img *media.Image) (*model.Offer, error) {
	offer := &model.Offer{}
	if err := s.apply(ctx, in, img, offer); err != nil {
		return nil, err
	}
	offer.ID = uuid.Must(uuid.NewV7()).String()
	offer.CreatedAt = s.now().UTC()

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		s.logger.Error().Err(err).Str("title", offer.Title).Msg("failed to create offer")
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.logger.Info().Str("offer_id", offer.ID).Msg("offer created")
	return offer, nil
}

func (s *offerService) Update(ctx context.Context, id string, in model.OfferInput, img *media.Image) (*model.Offer, error) {
	offer, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, in, img, offer); err != nil {
		return nil, err
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		if errors.Is(err, model.ErrOfferNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("offer_id", id).Msg("failed to update offer")
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	s.logger.Info().Str("offer_id", id).Msg("offer updated")
	return offer, nil
}

func (s *offerService) Delete(ctx context.Context, id string) error {
	if err := s.offerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrOfferNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("offer_id", id).Msg("failed to delete offer")
		return fmt.Errorf("failed to delete offer: %w", err)
	}

	s.logger.Info().Str("offer_id", id).Msg("offer deleted")
	return nil
}

// apply validates in onto offer. A linked product fills in the image and
// price when the form leaves them empty; an uploaded image wins over both.
func (s *offerService) apply(ctx context.Context, in model.OfferInput, img *media.Image, offer *model.Offer) error {
	if err := in.Apply(offer); err != nil {
		return err
	}

	if offer.ProductID != "" && (offer.ImageURL == "" || offer.Price == 0) {
		product, err := s.productRepo.GetByID(ctx, offer.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", offer.ProductID).Msg("failed to load offer product")
			return fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			return model.ErrProductNotFound
		}
		if offer.ImageURL == "" {
			offer.ImageURL = product.ImageURL
		}
		if offer.Price == 0 {
			offer.Price, _ = product.ListingPrice()
		}
	}

	url, err := uploadOptional(ctx, s.uploads, img, offer.ImageURL)
	if err != nil {
		return err
	}
	offer.ImageURL = strings.TrimSpace(url)
	return nil
}

func (s *offerService) get(ctx context.Context, id string) (*model.Offer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrOfferNotFound
	}
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("offer_id", id).Msg("failed to get offer")
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return nil, model.ErrOfferNotFound
	}
	return offer, nil
}

func (s *offerService) views(offers []model.Offer) []model.OfferView {
	now := s.now()
	views := make([]model.OfferView, len(offers))
	for i, o := range offers {
		views[i] = model.NewOfferView(o, now)
	}
	return views
}
