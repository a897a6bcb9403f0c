package router

import (
	"net/http"

	"produce-kart/internal/handler"
	"produce-kart/internal/middleware"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Product  *handler.ProductHandler
	Offer    *handler.OfferHandler
	Settings *handler.SettingsHandler
	Cart     *handler.CartHandler
	Auth     *handler.AuthHandler
	Upload   *handler.UploadHandler
}

// Options configures cross-cutting behaviour of the router.
type Options struct {
	AllowedOrigin string
	Sessions      middleware.SessionVerifier
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status": "healthy"}`))
	})

	// Storefront
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)
	mux.HandleFunc("GET /api/products/{id}/inquiry", h.Product.Inquiry)
	mux.HandleFunc("GET /api/landing", h.Offer.Landing)
	mux.HandleFunc("GET /api/offers/{id}", h.Offer.GetByID)

	mux.HandleFunc("GET /api/carts/{cartID}", h.Cart.Get)
	mux.HandleFunc("DELETE /api/carts/{cartID}", h.Cart.Clear)
	mux.HandleFunc("POST /api/carts/{cartID}/items", h.Cart.AddItem)
	mux.HandleFunc("PUT /api/carts/{cartID}/items/{itemID}", h.Cart.UpdateItem)
	mux.HandleFunc("DELETE /api/carts/{cartID}/items/{itemID}", h.Cart.RemoveItem)
	mux.HandleFunc("POST /api/carts/{cartID}/offers/{offerID}", h.Cart.AddOffer)
	mux.HandleFunc("POST /api/carts/{cartID}/checkout", h.Cart.Checkout)

	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("GET /api/auth/session", h.Auth.Session)

	// Admin panel, behind a signed-in session
	admin := middleware.AdminAuth(opts.Sessions, logger)
	adminRoute := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, admin(fn))
	}

	adminRoute("POST /api/admin/products", h.Product.Create)
	adminRoute("PUT /api/admin/products/{id}", h.Product.Update)
	adminRoute("DELETE /api/admin/products/{id}", h.Product.Delete)

	adminRoute("POST /api/admin/uploads", h.Upload.Upload)

	adminRoute("GET /api/admin/offers", h.Offer.List)
	adminRoute("GET /api/admin/offers/{id}", h.Offer.GetByID)
	adminRoute("POST /api/admin/offers", h.Offer.Create)
	adminRoute("PUT /api/admin/offers/{id}", h.Offer.Update)
	adminRoute("DELETE /api/admin/offers/{id}", h.Offer.Delete)

	adminRoute("GET /api/admin/settings", h.Settings.Get)
	adminRoute("PUT /api/admin/settings/offer-week", h.Settings.SetOfferWeek)
	adminRoute("POST /api/admin/merits", h.Settings.CreateMerit)
	adminRoute("PUT /api/admin/merits/{id}", h.Settings.UpdateMerit)
	adminRoute("DELETE /api/admin/merits/{id}", h.Settings.DeleteMerit)

	// Apply middleware in order: Recovery -> Tracing -> Logging -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(opts.AllowedOrigin)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = otelhttp.NewHandler(handler, "produce-kart",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
	)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
