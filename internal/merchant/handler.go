package merchant

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// ProductSyncer is implemented by Syncer.
type ProductSyncer interface {
	Sync(ctx context.Context, productID string, data *ListingData) (string, error)
}

// Handler serves the syncProduct endpoint.
type Handler struct {
	syncer        ProductSyncer
	allowedOrigin string
	logger        zerolog.Logger
}

// NewHandler creates the syncProduct handler.
func NewHandler(syncer ProductSyncer, allowedOrigin string, logger zerolog.Logger) *Handler {
	return &Handler{
		syncer:        syncer,
		allowedOrigin: allowedOrigin,
		logger:        logger.With().Str("handler", "sync_product").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", h.allowedOrigin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn().Err(err).Msg("invalid sync request body")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing productId"})
		return
	}

	msg, err := h.syncer.Sync(r.Context(), req.ProductID, req.Data)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, SyncResponse{Success: true, Msg: msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
