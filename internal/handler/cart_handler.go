package handler

import (
	"net/http"

	"produce-kart/internal/model"
	"produce-kart/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles shopping cart requests. Carts are addressed by a
// client-chosen id.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/carts/{cartID} requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Get(r.Context(), r.PathValue("cartID"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Clear handles DELETE /api/carts/{cartID} requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), r.PathValue("cartID")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/carts/{cartID}/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.AddProduct(r.Context(), r.PathValue("cartID"), req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateItem handles PUT /api/carts/{cartID}/items/{itemID} requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateQuantityRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.UpdateQuantity(r.Context(), r.PathValue("cartID"), r.PathValue("itemID"), req.Quantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RemoveItem handles DELETE /api/carts/{cartID}/items/{itemID} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.RemoveItem(r.Context(), r.PathValue("cartID"), r.PathValue("itemID"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddOffer handles POST /api/carts/{cartID}/offers/{offerID} requests.
func (h *CartHandler) AddOffer(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.AddOffer(r.Context(), r.PathValue("cartID"), r.PathValue("offerID"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Checkout handles POST /api/carts/{cartID}/checkout requests.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Checkout(r.Context(), r.PathValue("cartID"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
