package handler

import (
	"net/http"

	"produce-kart/internal/model"
	"produce-kart/internal/service"

	"github.com/rs/zerolog"
)

// SettingsHandler handles the offer week flag and merits.
type SettingsHandler struct {
	service  service.SettingsService
	maxBytes int64
	logger   zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(service service.SettingsService, maxBytes int64, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "settings").Logger(),
	}
}

type offerWeekRequest struct {
	IsOfferWeek *bool `json:"isOfferWeek"`
}

// Get handles GET /api/admin/settings requests.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SetOfferWeek handles PUT /api/admin/settings/offer-week requests.
func (h *SettingsHandler) SetOfferWeek(w http.ResponseWriter, r *http.Request) {
	var req offerWeekRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}
	if req.IsOfferWeek == nil {
		writeServiceError(w, model.MissingField("isOfferWeek"), h.logger)
		return
	}

	settings, err := h.service.SetOfferWeek(r.Context(), *req.IsOfferWeek)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// CreateMerit handles POST /api/admin/merits requests.
func (h *SettingsHandler) CreateMerit(w http.ResponseWriter, r *http.Request) {
	var in model.MeritInput
	img, ok := decodeForm(w, r, &in, h.maxBytes, h.logger)
	if !ok {
		return
	}

	merit, err := h.service.CreateMerit(r.Context(), in, img)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, merit)
}

// UpdateMerit handles PUT /api/admin/merits/{id} requests.
func (h *SettingsHandler) UpdateMerit(w http.ResponseWriter, r *http.Request) {
	var in model.MeritInput
	img, ok := decodeForm(w, r, &in, h.maxBytes, h.logger)
	if !ok {
		return
	}

	merit, err := h.service.UpdateMerit(r.Context(), r.PathValue("id"), in, img)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, merit)
}

// DeleteMerit handles DELETE /api/admin/merits/{id} requests.
func (h *SettingsHandler) DeleteMerit(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMerit(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
