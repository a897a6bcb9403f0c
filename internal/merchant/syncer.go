package merchant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"produce-kart/internal/config"

	"github.com/rs/zerolog"
	"google.golang.org/api/content/v2.1"
	"google.golang.org/api/option"
)

// Syncer applies sync requests to a Merchant Center account.
type Syncer struct {
	products *content.ProductsService
	cfg      config.MerchantSyncConfig
	logger   zerolog.Logger
}

// NewSyncer creates a Content API client. Callers supply credentials
// through opts, typically option.WithCredentialsFile.
func NewSyncer(ctx context.Context, cfg config.MerchantSyncConfig, logger zerolog.Logger, opts ...option.ClientOption) (*Syncer, error) {
	opts = append([]option.ClientOption{option.WithScopes(content.ContentScope)}, opts...)
	svc, err := content.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create content API client: %w", err)
	}
	return &Syncer{
		products: svc.Products,
		cfg:      cfg,
		logger:   logger.With().Str("component", "merchant-syncer").Logger(),
	}, nil
}

// Sync deletes the listing when data is nil and inserts or replaces it otherwise.
func (s *Syncer) Sync(ctx context.Context, productID string, data *ListingData) (string, error) {
	if data == nil {
		restID := strings.Join([]string{"online", s.cfg.ContentLanguage, s.cfg.TargetCountry, productID}, ":")
		if err := s.products.Delete(s.cfg.MerchantID, restID).Context(ctx).Do(); err != nil {
			s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to delete merchant product")
			return "", err
		}
		s.logger.Info().Str("product_id", productID).Msg("merchant product deleted")
		return "Product deleted", nil
	}

	if _, err := s.products.Insert(s.cfg.MerchantID, s.listing(productID, data)).Context(ctx).Do(); err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to insert merchant product")
		return "", err
	}
	s.logger.Info().Str("product_id", productID).Msg("merchant product synced")
	return "Product synced", nil
}

func (s *Syncer) listing(productID string, data *ListingData) *content.Product {
	return &content.Product{
		OfferId:     productID,
		Title:       data.Name,
		Description: data.Description,
		Link:        strings.TrimSuffix(s.cfg.StoreBaseURL, "/") + "/product/" + productID,
		ImageLink:   data.Image,
		Price: &content.Price{
			Value:    strconv.FormatFloat(data.Price, 'f', -1, 64),
			Currency: s.cfg.Currency,
		},
		Availability:    "in stock",
		Condition:       "new",
		ContentLanguage: s.cfg.ContentLanguage,
		TargetCountry:   s.cfg.TargetCountry,
		Channel:         "online",
	}
}
