package handler

import (
	"net/http"

	"produce-kart/internal/model"
	"produce-kart/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service  service.ProductService
	maxBytes int64
	logger   zerolog.Logger
}

// NewProductHandler creates a new product handler. maxBytes bounds multipart
// admin forms.
func NewProductHandler(service service.ProductService, maxBytes int64, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests with pagination.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, err.Error(), h.logger)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidParameter, err.Error(), h.logger)
		return
	}

	products, err := h.service.List(r.Context(), model.ProductFilter{
		Category: model.Category(r.URL.Query().Get("category")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Inquiry handles GET /api/products/{id}/inquiry requests.
func (h *ProductHandler) Inquiry(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Inquiry(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/admin/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.ProductInput
	img, ok := decodeForm(w, r, &in, h.maxBytes, h.logger)
	if !ok {
		return
	}

	product, err := h.service.Create(r.Context(), in, img)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.ProductInput
	img, ok := decodeForm(w, r, &in, h.maxBytes, h.logger)
	if !ok {
		return
	}

	product, err := h.service.Update(r.Context(), r.PathValue("id"), in, img)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
