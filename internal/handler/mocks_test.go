package handler

import (
	"context"

	"produce-kart/internal/auth"
	"produce-kart/internal/media"
	"produce-kart/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Inquiry(ctx context.Context, id string) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in model.ProductInput, img *media.Image) (*model.Product, error) {
	args := m.Called(ctx, in, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, in model.ProductInput, img *media.Image) (*model.Product, error) {
	args := m.Called(ctx, id, in, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockOfferService is a mock implementation of OfferService.
type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) Landing(ctx context.Context) (*model.LandingView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LandingView), args.Error(1)
}

func (m *MockOfferService) List(ctx context.Context) ([]model.OfferView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OfferView), args.Error(1)
}

func (m *MockOfferService) GetByID(ctx context.Context, id string) (*model.OfferView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OfferView), args.Error(1)
}

func (m *MockOfferService) Create(ctx context.Context, in model.OfferInput, img *media.Image) (*model.Offer, error) {
	args := m.Called(ctx, in, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockOfferService) Update(ctx context.Context, id string, in model.OfferInput, img *media.Image) (*model.Offer, error) {
	args := m.Called(ctx, id, in, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *MockOfferService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockSettingsService is a mock implementation of SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (*model.OfferSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OfferSettings), args.Error(1)
}

func (m *MockSettingsService) SetOfferWeek(ctx context.Context, enabled bool) (*model.OfferSettings, error) {
	args := m.Called(ctx, enabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OfferSettings), args.Error(1)
}

func (m *MockSettingsService) CreateMerit(ctx context.Context, in model.MeritInput, img *media.Image) (*model.Merit, error) {
	args := m.Called(ctx, in, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merit), args.Error(1)
}

func (m *MockSettingsService) UpdateMerit(ctx context.Context, id string, in model.MeritInput, img *media.Image) (*model.Merit, error) {
	args := m.Called(ctx, id, in, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Merit), args.Error(1)
}

func (m *MockSettingsService) DeleteMerit(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) cartResult(args mock.Arguments) (*model.CartResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartResponse), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, cartID string) (*model.CartResponse, error) {
	return m.cartResult(m.Called(ctx, cartID))
}

func (m *MockCartService) AddProduct(ctx context.Context, cartID string, req model.AddToCartRequest) (*model.CartResponse, error) {
	return m.cartResult(m.Called(ctx, cartID, req))
}

func (m *MockCartService) AddOffer(ctx context.Context, cartID, offerID string) (*model.CartResponse, error) {
	return m.cartResult(m.Called(ctx, cartID, offerID))
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*model.CartResponse, error) {
	return m.cartResult(m.Called(ctx, cartID, itemID, quantity))
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, itemID string) (*model.CartResponse, error) {
	return m.cartResult(m.Called(ctx, cartID, itemID))
}

func (m *MockCartService) Clear(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *MockCartService) Checkout(ctx context.Context, cartID string) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

// MockUploadService is a mock implementation of UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, img media.Image) (string, error) {
	args := m.Called(ctx, img)
	return args.String(0), args.Error(1)
}

// MockAuthenticator is a mock implementation of Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthenticator) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthenticator) Session(ctx context.Context, token string) (*auth.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}
