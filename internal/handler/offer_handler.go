package handler

import (
	"net/http"

	"produce-kart/internal/model"
	"produce-kart/internal/service"

	"github.com/rs/zerolog"
)

// OfferHandler handles the landing page and offer administration.
type OfferHandler struct {
	service  service.OfferService
	maxBytes int64
	logger   zerolog.Logger
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(service service.OfferService, maxBytes int64, logger zerolog.Logger) *OfferHandler {
	return &OfferHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "offer").Logger(),
	}
}

// Landing handles GET /api/landing requests.
func (h *OfferHandler) Landing(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Landing(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// List handles GET /api/admin/offers requests.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, offers)
}

// GetByID handles GET /api/offers/{id} and GET /api/admin/offers/{id}.
func (h *OfferHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	offer, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// Create handles POST /api/admin/offers requests.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.OfferInput
	img, ok := decodeForm(w, r, &in, h.maxBytes, h.logger)
	if !ok {
		return
	}

	offer, err := h.service.Create(r.Context(), in, img)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, offer)
}

// Update handles PUT /api/admin/offers/{id} requests.
func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.OfferInput
	img, ok := decodeForm(w, r, &in, h.maxBytes, h.logger)
	if !ok {
		return
	}

	offer, err := h.service.Update(r.Context(), r.PathValue("id"), in, img)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// Delete handles DELETE /api/admin/offers/{id} requests.
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
