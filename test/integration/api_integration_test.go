package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"produce-kart/internal/auth"
	"produce-kart/internal/cart"
	"produce-kart/internal/handler"
	"produce-kart/internal/media"
	"produce-kart/internal/model"
	"produce-kart/internal/router"
	"produce-kart/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "s3cret-pass"
	storePhone    = "+971 50 000 0000"
)

// staticUploader stores nothing and returns a fixed URL.
type staticUploader struct{}

func (staticUploader) Upload(_ context.Context, img media.Image) (string, error) {
	return "https://cdn.example.com/" + img.Filename, nil
}

func setupTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	sessions := auth.NewMemorySessionStore()
	authenticator := auth.NewAuthenticator(auth.NewLocalProvider(adminEmail, string(hash)), sessions, time.Hour, logger)

	uploads := service.NewUploadService(staticUploader{}, 1<<20, logger)
	products := service.NewProductService(testDB.Repos.Products, uploads, service.NopNotifier{}, storePhone, logger)
	offers := service.NewOfferService(testDB.Repos.Offers, testDB.Repos.Products, testDB.Repos.Settings, uploads, logger)
	settings := service.NewSettingsService(testDB.Repos.Settings, uploads, logger)
	carts := service.NewCartService(cart.NewMemoryStore(), testDB.Repos.Products, testDB.Repos.Offers, storePhone, logger)

	const formLimit = 2 << 20
	return router.New(router.Handlers{
		Product:  handler.NewProductHandler(products, formLimit, logger),
		Offer:    handler.NewOfferHandler(offers, formLimit, logger),
		Settings: handler.NewSettingsHandler(settings, formLimit, logger),
		Cart:     handler.NewCartHandler(carts, logger),
		Auth:     handler.NewAuthHandler(authenticator, logger),
		Upload:   handler.NewUploadHandler(uploads, formLimit, logger),
	}, router.Options{AllowedOrigin: "*", Sessions: authenticator}, logger)
}

func do(t *testing.T, server http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestStorefrontAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	t.Run("GET /health returns 200", func(t *testing.T) {
		w := do(t, server, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GET /api/products lists the seeded catalogue", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB)

		w := do(t, server, http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]model.Product](t, w), 3)

		w = do(t, server, http.MethodGet, "/api/products?category=vegetable", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		products := decode[[]model.Product](t, w)
		require.Len(t, products, 1)
		assert.Equal(t, "tomato", products[0].ID)
	})

	t.Run("GET /api/products/{id} returns 404 for unknown product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := do(t, server, http.MethodGet, "/api/products/missing", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, model.ErrCodeProductNotFound, decode[model.ErrorResponse](t, w).Error)
	})

	t.Run("GET /api/landing switches between offers and merits", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB)

		w := do(t, server, http.MethodGet, "/api/landing", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view := decode[model.LandingView](t, w)
		assert.Equal(t, model.LandingModeOffers, view.Mode)
		assert.Len(t, view.Offers, 2)

		require.NoError(t, testDB.Repos.Settings.SetOfferWeek(context.Background(), true))

		w = do(t, server, http.MethodGet, "/api/landing", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		view = decode[model.LandingView](t, w)
		assert.Equal(t, model.LandingModeMerits, view.Mode)
		require.Len(t, view.Merits, 1)
		assert.Equal(t, "Farm fresh", view.Merits[0].Title)
	})

	t.Run("cart checkout builds a WhatsApp order link", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalog(t, testDB)

		w := do(t, server, http.MethodPost, "/api/carts/c1/items", "", model.AddToCartRequest{ProductID: "apple", Quantity: 2})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "16.00", decode[model.CartResponse](t, w).TotalPrice)

		w = do(t, server, http.MethodPost, "/api/carts/c1/items", "", model.AddToCartRequest{ProductID: "mango", Size: "5kg"})
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[model.CartResponse](t, w)
		assert.Equal(t, 3, resp.TotalItems)
		assert.Equal(t, "41.00", resp.TotalPrice)

		w = do(t, server, http.MethodPost, "/api/carts/c1/offers/offer-old", "", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, model.ErrCodeOfferExpired, decode[model.ErrorResponse](t, w).Error)

		w = do(t, server, http.MethodPost, "/api/carts/c1/offers/offer-apple", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "47.00", decode[model.CartResponse](t, w).TotalPrice)

		w = do(t, server, http.MethodPost, "/api/carts/c1/checkout", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		checkout := decode[model.CheckoutResponse](t, w)
		assert.True(t, strings.HasPrefix(checkout.URL, "https://wa.me/971500000000?text="))
		assert.Contains(t, checkout.Message, "Mango (5kg)")
		assert.Equal(t, "47.00", checkout.Total)
	})

	t.Run("checkout of an empty cart fails", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/api/carts/empty/checkout", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB)

	newProduct := model.ProductInput{
		Name:     "Spinach",
		Category: model.CategoryVegetable,
		Type:     model.PricingPerPiece,
		Price:    3.5,
	}

	t.Run("admin routes require a session", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/api/admin/products", "", newProduct)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = do(t, server, http.MethodPost, "/api/admin/products", "not-a-token", newProduct)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": adminEmail, "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("signed-in admin manages the catalogue", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		w := do(t, server, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": adminEmail, "password": adminPassword,
		})
		require.Equal(t, http.StatusOK, w.Code)
		token := decode[auth.Session](t, w).Token
		require.NotEmpty(t, token)

		w = do(t, server, http.MethodPost, "/api/admin/products", token, newProduct)
		require.Equal(t, http.StatusCreated, w.Code)
		created := decode[model.Product](t, w)
		require.NotEmpty(t, created.ID)

		w = do(t, server, http.MethodPost, "/api/admin/offers", token, model.OfferInput{
			ProductID: created.ID,
			Title:     "Green week",
			Discount:  20,
			EndDate:   "2099-01-01",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		offer := decode[model.Offer](t, w)
		assert.Equal(t, 3.5, offer.Price)
		assert.Equal(t, "2.80", offer.OfferPrice().StringFixed(2))

		w = do(t, server, http.MethodPost, "/api/admin/merits", token, model.MeritInput{Title: "Local farms"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(t, server, http.MethodGet, "/api/admin/settings", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		settings := decode[model.OfferSettings](t, w)
		require.Len(t, settings.Merits, 1)
		assert.False(t, settings.IsOfferWeek)

		w = do(t, server, http.MethodDelete, "/api/admin/products/"+created.ID, token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, server, http.MethodGet, "/api/products/"+created.ID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, server, http.MethodPost, "/api/auth/logout", token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, server, http.MethodGet, "/api/admin/settings", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
