package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"produce-kart/internal/media"
	"produce-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOfferHandler_Landing(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	offer := model.Offer{ID: "o1", Title: "Mango week", Price: 20, Discount: 25, EndDate: now.Add(time.Hour)}

	svc := new(MockOfferService)
	svc.On("Landing", mock.Anything).Return(&model.LandingView{
		Mode:   model.LandingModeOffers,
		Offers: []model.OfferView{model.NewOfferView(offer, now)},
	}, nil)

	h := NewOfferHandler(svc, 1<<20, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/landing", nil)
	w := serve("GET /api/landing", h.Landing, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Mode   string `json:"mode"`
		Offers []struct {
			ID         string `json:"id"`
			OfferPrice string `json:"offerPrice"`
			Expired    bool   `json:"expired"`
		} `json:"offers"`
		Merits []model.Merit `json:"merits"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "offers", body.Mode)
	require.Len(t, body.Offers, 1)
	assert.Equal(t, "o1", body.Offers[0].ID)
	assert.Equal(t, "15", body.Offers[0].OfferPrice)
	assert.False(t, body.Offers[0].Expired)
	assert.Nil(t, body.Merits)
}

func TestOfferHandler_Admin(t *testing.T) {
	input := model.OfferInput{ProductID: "p1", Title: "Deal", Discount: 10, EndDate: "2025-03-20"}

	tests := []struct {
		name           string
		method         string
		pattern        string
		target         string
		body           string
		route          func(h *OfferHandler) http.HandlerFunc
		setupMock      func(m *MockOfferService)
		expectedStatus int
	}{
		{
			name:    "List",
			method:  http.MethodGet,
			pattern: "GET /api/admin/offers",
			target:  "/api/admin/offers",
			route:   func(h *OfferHandler) http.HandlerFunc { return h.List },
			setupMock: func(m *MockOfferService) {
				m.On("List", mock.Anything).Return([]model.OfferView{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Get missing",
			method:  http.MethodGet,
			pattern: "GET /api/offers/{id}",
			target:  "/api/offers/o9",
			route:   func(h *OfferHandler) http.HandlerFunc { return h.GetByID },
			setupMock: func(m *MockOfferService) {
				m.On("GetByID", mock.Anything, "o9").Return(nil, model.ErrOfferNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:    "Create",
			method:  http.MethodPost,
			pattern: "POST /api/admin/offers",
			target:  "/api/admin/offers",
			body:    `{"productId":"p1","title":"Deal","discount":10,"endDate":"2025-03-20"}`,
			route:   func(h *OfferHandler) http.HandlerFunc { return h.Create },
			setupMock: func(m *MockOfferService) {
				m.On("Create", mock.Anything, input, (*media.Image)(nil)).Return(&model.Offer{ID: "o1"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:    "Create with bad date",
			method:  http.MethodPost,
			pattern: "POST /api/admin/offers",
			target:  "/api/admin/offers",
			body:    `{"title":"Deal","endDate":"soon"}`,
			route:   func(h *OfferHandler) http.HandlerFunc { return h.Create },
			setupMock: func(m *MockOfferService) {
				m.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, model.ErrInvalidDate)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:    "Update",
			method:  http.MethodPut,
			pattern: "PUT /api/admin/offers/{id}",
			target:  "/api/admin/offers/o1",
			body:    `{"productId":"p1","title":"Deal","discount":10,"endDate":"2025-03-20"}`,
			route:   func(h *OfferHandler) http.HandlerFunc { return h.Update },
			setupMock: func(m *MockOfferService) {
				m.On("Update", mock.Anything, "o1", input, (*media.Image)(nil)).Return(&model.Offer{ID: "o1"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Delete",
			method:  http.MethodDelete,
			pattern: "DELETE /api/admin/offers/{id}",
			target:  "/api/admin/offers/o1",
			route:   func(h *OfferHandler) http.HandlerFunc { return h.Delete },
			setupMock: func(m *MockOfferService) {
				m.On("Delete", mock.Anything, "o1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOfferService)
			tt.setupMock(svc)
			h := NewOfferHandler(svc, 1<<20, zerolog.Nop())

			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := serve(tt.pattern, tt.route(h), req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
