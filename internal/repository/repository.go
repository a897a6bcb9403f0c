package repository

import (
	"context"
	"time"

	"produce-kart/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products ordered by name, optionally restricted to a category.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. It returns nil, nil when
	// the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces every field of an existing product except its creation time.
	// Returns model.ErrProductNotFound if the product does not exist.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns model.ErrProductNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// OfferRepository defines the interface for offer data access operations.
type OfferRepository interface {
	// List retrieves offers ordered by createdAt, then id. A limit of zero
	// returns all offers.
	List(ctx context.Context, limit int) ([]model.Offer, error)

	// GetByID retrieves an offer by its ID. It returns nil, nil when the offer
	// does not exist.
	GetByID(ctx context.Context, id string) (*model.Offer, error)

	Create(ctx context.Context, offer *model.Offer) error

	// Update returns model.ErrOfferNotFound if the offer does not exist.
	Update(ctx context.Context, offer *model.Offer) error

	// Delete returns model.ErrOfferNotFound if the offer does not exist.
	Delete(ctx context.Context, id string) error
}

// SettingsRepository stores the single offer settings document.
type SettingsRepository interface {
	// Get returns the settings, or nil, nil if they were never written.
	Get(ctx context.Context) (*model.OfferSettings, error)

	// Save writes the flag and replaces the merit list atomically.
	Save(ctx context.Context, settings *model.OfferSettings) error

	// SetOfferWeek updates only the offer week flag, creating the settings if needed.
	SetOfferWeek(ctx context.Context, enabled bool) error
}

// stampCreated sets an unset creation time. Millisecond precision is what
// both stores keep.
func stampCreated(o *model.Offer) {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	o.CreatedAt = o.CreatedAt.Truncate(time.Millisecond)
}
