package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"produce-kart/internal/checkout"
	"produce-kart/internal/media"
	"produce-kart/internal/model"
	"produce-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	uploads     UploadService
	notifier    CatalogNotifier
	phone       string
	logger      zerolog.Logger
	now         func() time.Time
}

// NewProductService creates a new product service. phone is the WhatsApp
// number inquiries are sent to.
func NewProductService(
	productRepo repository.ProductRepository,
	uploads UploadService,
	notifier CatalogNotifier,
	phone string,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		uploads:     uploads,
		notifier:    notifier,
		phone:       phone,
		logger:      logger.With().Str("service", "product").Logger(),
		now:         time.Now,
	}
}

// List retrieves products with pagination.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, model.ErrInvalidCategory
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Str("category", string(filter.Category)).
			Int("limit", filter.Limit).
			Int("offset", filter.Offset).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", filter.Limit).
		Int("offset", filter.Offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if strings.TrimSpace(id) == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

func (s *productService) Inquiry(ctx context.Context, id string) (*model.CheckoutResponse, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	msg := checkout.ProductInquiry(product)
	price, _ := product.ListingPrice()
	return &model.CheckoutResponse{
		URL:     checkout.Link(s.phone, msg),
		Message: msg,
		Total:   fmt.Sprintf("%.2f", price),
	}, nil
}

func (s *productService) Create(ctx context.Context, in model.ProductInput, img *media.Image) (*model.Product, error) {
	p := &model.Product{}
	if err := in.Normalise(p); err != nil {
		return nil, err
	}

	url, err := uploadOptional(ctx, s.uploads, img, p.ImageURL)
	if err != nil {
		return nil, err
	}
	p.ImageURL = url

	now := s.now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	s.notifier.ProductChanged(p.ID, p)

	return p, nil
}

func (s *productService) Update(ctx context.Context, id string, in model.ProductInput, img *media.Image) (*model.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := in.Normalise(p); err != nil {
		return nil, err
	}

	url, err := uploadOptional(ctx, s.uploads, img, p.ImageURL)
	if err != nil {
		return nil, err
	}
	p.ImageURL = url
	p.UpdatedAt = s.now().UTC()

	if err := s.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	s.notifier.ProductChanged(p.ID, p)

	return p, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	s.notifier.ProductChanged(id, nil)

	return nil
}
