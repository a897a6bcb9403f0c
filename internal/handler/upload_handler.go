package handler

import (
	"net/http"

	"produce-kart/internal/model"
	"produce-kart/internal/service"

	"github.com/rs/zerolog"
)

// UploadHandler accepts standalone admin image uploads.
type UploadHandler struct {
	service  service.UploadService
	maxBytes int64
	logger   zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service service.UploadService, maxBytes int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// UploadResponse carries the hosted URL of an uploaded image.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/admin/uploads requests with a multipart "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidImage, "invalid multipart form", h.logger)
		return
	}

	img, err := formImage(r, "file")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidImage, err.Error(), h.logger)
		return
	}
	if img == nil {
		writeServiceError(w, model.MissingField("file"), h.logger)
		return
	}

	url, err := h.service.Upload(r.Context(), *img)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}
