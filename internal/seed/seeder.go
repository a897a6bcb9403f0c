package seed

import (
	"context"
	"fmt"
	"time"

	"produce-kart/internal/model"
	"produce-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Result counts what a seed run wrote.
type Result struct {
	ProductsCreated int
	ProductsUpdated int
	OffersCreated   int
	OffersUpdated   int
	Merits          int
}

// Seeder writes a catalog through the repositories. Entries with an id that
// already exists are updated in place, so seeding is repeatable.
type Seeder struct {
	products repository.ProductRepository
	offers   repository.OfferRepository
	settings repository.SettingsRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewSeeder creates a Seeder.
func NewSeeder(
	products repository.ProductRepository,
	offers repository.OfferRepository,
	settings repository.SettingsRepository,
	logger zerolog.Logger,
) *Seeder {
	return &Seeder{
		products: products,
		offers:   offers,
		settings: settings,
		logger:   logger.With().Str("component", "seeder").Logger(),
		now:      time.Now,
	}
}

// Apply validates every entry before writing anything, then upserts
// products and offers and replaces the offer settings.
func (s *Seeder) Apply(ctx context.Context, c *Catalog) (Result, error) {
	var res Result
	now := s.now().UTC()

	products := make([]model.Product, len(c.Products))
	for i, e := range c.Products {
		products[i].ID = e.ID
		if err := e.Input().Normalise(&products[i]); err != nil {
			return res, fmt.Errorf("product %d (%s): %w", i, e.Name, err)
		}
	}

	offers := make([]model.Offer, len(c.Offers))
	for i, e := range c.Offers {
		offers[i].ID = e.ID
		if err := e.Input().Apply(&offers[i]); err != nil {
			return res, fmt.Errorf("offer %d (%s): %w", i, e.Title, err)
		}
	}

	merits := make([]model.Merit, len(c.Merits))
	for i, e := range c.Merits {
		merits[i].ID = e.ID
		if merits[i].ID == "" {
			merits[i].ID = uuid.NewString()
		}
		if err := e.Input().Apply(&merits[i]); err != nil {
			return res, fmt.Errorf("merit %d: %w", i, err)
		}
	}

	for i := range products {
		created, err := s.upsertProduct(ctx, &products[i], now)
		if err != nil {
			return res, err
		}
		if created {
			res.ProductsCreated++
		} else {
			res.ProductsUpdated++
		}
	}

	for i := range offers {
		// Spaced a millisecond apart so the catalogue order survives storage.
		offers[i].CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		created, err := s.upsertOffer(ctx, &offers[i])
		if err != nil {
			return res, err
		}
		if created {
			res.OffersCreated++
		} else {
			res.OffersUpdated++
		}
	}

	if err := s.settings.Save(ctx, &model.OfferSettings{IsOfferWeek: c.IsOfferWeek, Merits: merits}); err != nil {
		return res, fmt.Errorf("failed to save offer settings: %w", err)
	}
	res.Merits = len(merits)

	s.logger.Info().
		Int("products_created", res.ProductsCreated).
		Int("products_updated", res.ProductsUpdated).
		Int("offers_created", res.OffersCreated).
		Int("offers_updated", res.OffersUpdated).
		Int("merits", res.Merits).
		Msg("catalog seeded")

	return res, nil
}

func (s *Seeder) upsertProduct(ctx context.Context, p *model.Product, now time.Time) (created bool, err error) {
	p.UpdatedAt = now
	if p.ID != "" {
		existing, err := s.products.GetByID(ctx, p.ID)
		if err != nil {
			return false, err
		}
		if existing != nil {
			p.CreatedAt = existing.CreatedAt
			return false, s.products.Update(ctx, p)
		}
	} else {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	return true, s.products.Create(ctx, p)
}

func (s *Seeder) upsertOffer(ctx context.Context, o *model.Offer) (created bool, err error) {
	if o.ID != "" {
		existing, err := s.offers.GetByID(ctx, o.ID)
		if err != nil {
			return false, err
		}
		if existing != nil {
			return false, s.offers.Update(ctx, o)
		}
	} else {
		o.ID = uuid.Must(uuid.NewV7()).String()
	}
	return true, s.offers.Create(ctx, o)
}
