package service

import (
	"context"

	"produce-kart/internal/media"
	"produce-kart/internal/model"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products with pagination and an optional category filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Inquiry builds the WhatsApp link for asking about a single product.
	Inquiry(ctx context.Context, id string) (*model.CheckoutResponse, error)

	// Create validates and stores a new product. A non-nil image is
	// uploaded first and its URL replaces in.ImageURL.
	Create(ctx context.Context, in model.ProductInput, img *media.Image) (*model.Product, error)

	// Update replaces an existing product.
	Update(ctx context.Context, id string, in model.ProductInput, img *media.Image) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}

// OfferService defines operations for offers and the landing page.
type OfferService interface {
	// Landing returns the hero content: merits during an offer week, the
	// first three offers otherwise.
	Landing(ctx context.Context) (*model.LandingView, error)

	List(ctx context.Context) ([]model.OfferView, error)
	GetByID(ctx context.Context, id string) (*model.OfferView, error)
	Create(ctx context.Context, in model.OfferInput, img *media.Image) (*model.Offer, error)
	Update(ctx context.Context, id string, in model.OfferInput, img *media.Image) (*model.Offer, error)
	Delete(ctx context.Context, id string) error
}

// SettingsService manages the offer week flag and merits.
type SettingsService interface {
	// Get returns the settings, creating the defaults on first use.
	Get(ctx context.Context) (*model.OfferSettings, error)

	SetOfferWeek(ctx context.Context, enabled bool) (*model.OfferSettings, error)
	CreateMerit(ctx context.Context, in model.MeritInput, img *media.Image) (*model.Merit, error)
	UpdateMerit(ctx context.Context, id string, in model.MeritInput, img *media.Image) (*model.Merit, error)
	DeleteMerit(ctx context.Context, id string) error
}

// CartService defines shopping cart operations.
type CartService interface {
	Get(ctx context.Context, cartID string) (*model.CartResponse, error)

	// AddProduct adds a catalogue product, or one of its box sizes, to the cart.
	AddProduct(ctx context.Context, cartID string, req model.AddToCartRequest) (*model.CartResponse, error)

	// AddOffer adds an offer to the cart unless it has expired.
	AddOffer(ctx context.Context, cartID, offerID string) (*model.CartResponse, error)

	UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (*model.CartResponse, error)
	Clear(ctx context.Context, cartID string) error

	// Checkout builds the WhatsApp order link for the cart.
	Checkout(ctx context.Context, cartID string) (*model.CheckoutResponse, error)
}

// UploadService hosts admin image uploads.
type UploadService interface {
	Upload(ctx context.Context, img media.Image) (string, error)
}

// CatalogNotifier is told about every product change.
type CatalogNotifier interface {
	// ProductChanged reports an upsert, or a delete when p is nil.
	ProductChanged(productID string, p *model.Product)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) ProductChanged(string, *model.Product) {}
