package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"produce-kart/internal/cart"
	"produce-kart/internal/checkout"
	"produce-kart/internal/model"
	"produce-kart/internal/repository"

	"github.com/rs/zerolog"
)

// offerCategory is the category label given to offer lines in the cart.
const offerCategory = "Offer"

type cartService struct {
	store       cart.Store
	productRepo repository.ProductRepository
	offerRepo   repository.OfferRepository
	phone       string
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCartService creates a new cart service. phone is the WhatsApp number
// orders are sent to.
func NewCartService(
	store cart.Store,
	productRepo repository.ProductRepository,
	offerRepo repository.OfferRepository,
	phone string,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		store:       store,
		productRepo: productRepo,
		offerRepo:   offerRepo,
		phone:       phone,
		logger:      logger.With().Str("service", "cart").Logger(),
		now:         time.Now,
	}
}

func (s *cartService) Get(ctx context.Context, cartID string) (*model.CartResponse, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return cartResponse(c, nil), nil
}

func (s *cartService) AddProduct(ctx context.Context, cartID string, req model.AddToCartRequest) (*model.CartResponse, error) {
	if strings.TrimSpace(req.ProductID) == "" {
		return nil, model.MissingField("productId")
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to get product for cart")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	item, err := productLine(product, req.Size)
	if err != nil {
		return nil, err
	}

	return s.add(ctx, cartID, item, req.Quantity)
}

func (s *cartService) AddOffer(ctx context.Context, cartID, offerID string) (*model.CartResponse, error) {
	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		s.logger.Error().Err(err).Str("offer_id", offerID).Msg("failed to get offer for cart")
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	if offer == nil {
		return nil, model.ErrOfferNotFound
	}
	if offer.Expired(s.now()) {
		s.logger.Debug().Str("offer_id", offerID).Msg("rejected expired offer")
		return nil, model.ErrOfferExpired
	}

	unit := model.PricingPerPiece.Unit()
	if offer.ProductID != "" {
		product, err := s.productRepo.GetByID(ctx, offer.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", offer.ProductID).Msg("failed to get offer product")
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		if product != nil {
			unit = product.Type.Unit()
		}
	}

	item := model.CartItem{
		ID:        "offer:" + offer.ID,
		ProductID: offer.ProductID,
		Name:      offer.Title,
		Price:     offer.OfferPrice().InexactFloat64(),
		ImageURL:  offer.ImageURL,
		Category:  offerCategory,
		Unit:      unit,
	}

	return s.add(ctx, cartID, item, 1)
}

func (s *cartService) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*model.CartResponse, error) {
	return s.mutate(ctx, cartID, func(c *model.Cart) error {
		return cart.UpdateQuantity(c, itemID, quantity)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID string) (*model.CartResponse, error) {
	return s.mutate(ctx, cartID, func(c *model.Cart) error {
		return cart.Remove(c, itemID)
	})
}

func (s *cartService) Clear(ctx context.Context, cartID string) error {
	if err := s.store.Delete(ctx, cartID); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.logger.Debug().Str("cart_id", cartID).Msg("cart cleared")
	return nil
}

func (s *cartService) Checkout(ctx context.Context, cartID string) (*model.CheckoutResponse, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, model.ErrCartEmpty
	}

	msg := checkout.OrderMessage(c)
	total := cart.TotalPrice(c).StringFixed(2)

	s.logger.Info().
		Str("cart_id", cartID).
		Int("items", cart.TotalItems(c)).
		Str("total", total).
		Msg("checkout link generated")

	return &model.CheckoutResponse{
		URL:     checkout.Link(s.phone, msg),
		Message: msg,
		Total:   total,
	}, nil
}

// productLine builds the cart line for a product. Box products are added per
// size and need one; other products ignore size.
func productLine(p *model.Product, size string) (model.CartItem, error) {
	item := model.CartItem{
		ID:        p.ID,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.UnitPrice(),
		ImageURL:  p.ImageURL,
		Category:  string(p.Category),
		Unit:      p.Type.Unit(),
	}

	if p.Type != model.PricingPerBox {
		return item, nil
	}

	size = strings.TrimSpace(size)
	if size == "" {
		return model.CartItem{}, model.MissingField("size")
	}
	box, ok := p.BoxSize(size)
	if !ok {
		return model.CartItem{}, model.ErrBoxSizeNotFound
	}

	item.ID = p.ID + ":" + box.Size
	item.Name = fmt.Sprintf("%s (%s)", p.Name, box.Size)
	item.Price = box.EffectivePrice()
	return item, nil
}

func (s *cartService) add(ctx context.Context, cartID string, item model.CartItem, qty int) (*model.CartResponse, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	merged, err := cart.Add(c, item, qty)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("cart_id", cartID).
		Str("item_id", item.ID).
		Bool("merged", merged).
		Msg("item added to cart")

	return cartResponse(c, &merged), nil
}

func (s *cartService) mutate(ctx context.Context, cartID string, fn func(*model.Cart) error) (*model.CartResponse, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return cartResponse(c, nil), nil
}

func (s *cartService) load(ctx context.Context, cartID string) (*model.Cart, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return c, nil
}

func (s *cartService) save(ctx context.Context, c *model.Cart) error {
	c.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("cart_id", c.ID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func cartResponse(c *model.Cart, merged *bool) *model.CartResponse {
	resp := &model.CartResponse{
		Cart:       *c,
		TotalItems: cart.TotalItems(c),
		TotalPrice: cart.TotalPrice(c).StringFixed(2),
		Merged:     merged,
	}
	if merged != nil {
		resp.Message = model.CartNoticeAdded
		if *merged {
			resp.Message = model.CartNoticeUpdated
		}
	}
	return resp
}
