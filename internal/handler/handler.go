package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"produce-kart/internal/media"
	"produce-kart/internal/model"

	"github.com/rs/zerolog"
)

// multipartMemory is the part of a multipart form kept in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Str("code", code).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps err to a response. Domain errors keep their code
// and message; anything else is reported as an internal error.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("unexpected service error")
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.ErrCodeInternalError,
			Message: "internal server error",
		})
		return
	}
	writeError(w, statusFor(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

func statusFor(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeOfferNotFound,
		model.ErrCodeMeritNotFound, model.ErrCodeCartItemNotFound:
		return http.StatusNotFound
	case model.ErrCodeOfferExpired:
		return http.StatusConflict
	case model.ErrCodeInvalidCredentials, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeUploadFailed:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON decodes the request body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// decodeForm reads an admin form. JSON bodies are decoded directly; a
// multipart body carries the JSON in its "data" field and an optional file
// in its "image" field. The returned image is nil when no file was sent.
func decodeForm(w http.ResponseWriter, r *http.Request, dst interface{}, maxBytes int64, logger zerolog.Logger) (*media.Image, bool) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, decodeJSON(w, r, dst, logger)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidImage, "invalid multipart form", logger)
		return nil, false
	}

	if err := json.Unmarshal([]byte(r.FormValue("data")), dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid form data", logger)
		return nil, false
	}

	img, err := formImage(r, "image")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidImage, err.Error(), logger)
		return nil, false
	}
	return img, true
}

// formImage returns the uploaded file in field, or nil if there is none.
func formImage(r *http.Request, field string) (*media.Image, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid %s field", field)
	}
	return imageFromPart(file, header), nil
}

func imageFromPart(file multipart.File, header *multipart.FileHeader) *media.Image {
	return &media.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return v, nil
}
