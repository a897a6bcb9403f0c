package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"produce-kart/internal/media"
	"produce-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_List(t *testing.T) {
	price := 8.0
	testProducts := []model.Product{
		{ID: "p1", Name: "Apple", Category: model.CategoryFruit, Type: model.PricingPerKg, Price: &price},
	}

	tests := []struct {
		name           string
		queryParams    string
		expectedFilter model.ProductFilter
		mockReturn     []model.Product
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:           "Success with default pagination",
			expectedFilter: model.ProductFilter{Limit: 10},
			mockReturn:     testProducts,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Category and custom pagination",
			queryParams:    "?category=fruit&limit=5&offset=10",
			expectedFilter: model.ProductFilter{Category: model.CategoryFruit, Limit: 5, Offset: 10},
			mockReturn:     testProducts,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Invalid limit parameter",
			queryParams:    "?limit=abc",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidParameter,
		},
		{
			name:           "Invalid offset parameter",
			queryParams:    "?offset=xyz",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidParameter,
		},
		{
			name:           "Invalid category",
			queryParams:    "?category=meat",
			expectedFilter: model.ProductFilter{Category: "meat", Limit: 10},
			mockError:      model.ErrInvalidCategory,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Service error",
			expectedFilter: model.ProductFilter{Limit: 10},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			if tt.expectService {
				svc.On("List", mock.Anything, tt.expectedFilter).Return(tt.mockReturn, tt.mockError)
			}

			h := NewProductHandler(svc, 1<<20, zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.queryParams, nil)
			w := serve("GET /api/products", h.List, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var got []model.Product
				require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
				assert.Len(t, got, len(tt.mockReturn))
			}
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
			}
			if tt.expectService {
				svc.AssertExpectations(t)
			} else {
				svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestProductHandler_GetByID(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		mockReturn     *model.Product
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success",
			id:             "p1",
			mockReturn:     &model.Product{ID: "p1", Name: "Apple"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Product not found",
			id:             "p9",
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Service error",
			id:             "p1",
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			svc.On("GetByID", mock.Anything, tt.id).Return(tt.mockReturn, tt.mockError)

			h := NewProductHandler(svc, 1<<20, zerolog.Nop())
			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.id, nil)
			w := serve("GET /api/products/{id}", h.GetByID, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Inquiry(t *testing.T) {
	svc := new(MockProductService)
	svc.On("Inquiry", mock.Anything, "p1").Return(&model.CheckoutResponse{
		URL: "https://wa.me/971547453650?text=Hi", Message: "Hi", Total: "9.50",
	}, nil)

	h := NewProductHandler(svc, 1<<20, zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/products/p1/inquiry", nil)
	w := serve("GET /api/products/{id}/inquiry", h.Inquiry, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://wa.me/971547453650?text=Hi","message":"Hi","total":"9.50"}`, w.Body.String())
}

func TestProductHandler_Create(t *testing.T) {
	input := model.ProductInput{Name: "Kale", Category: model.CategoryVegetable, Type: model.PricingPerKg, Price: 14}

	t.Run("JSON body", func(t *testing.T) {
		svc := new(MockProductService)
		svc.On("Create", mock.Anything, input, (*media.Image)(nil)).Return(&model.Product{ID: "p1", Name: "Kale"}, nil)

		h := NewProductHandler(svc, 1<<20, zerolog.Nop())
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", jsonBody(t, input))
		req.Header.Set("Content-Type", "application/json")
		w := serve("POST /api/admin/products", h.Create, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Multipart with image", func(t *testing.T) {
		svc := new(MockProductService)
		svc.On("Create", mock.Anything, input, mock.MatchedBy(func(img *media.Image) bool {
			return img != nil && img.Filename == "kale.jpg"
		})).Return(&model.Product{ID: "p1"}, nil)

		h := NewProductHandler(svc, 1<<20, zerolog.Nop())
		data, _ := json.Marshal(input)
		req := multipartRequest(t, http.MethodPost, "/api/admin/products", string(data), "image", "kale.jpg", []byte("jpeg"))
		w := serve("POST /api/admin/products", h.Create, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		svc := new(MockProductService)

		h := NewProductHandler(svc, 1<<20, zerolog.Nop())
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader("{"))
		w := serve("POST /api/admin/products", h.Create, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.ErrCodeInvalidJSON, decodeError(t, w).Error)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Validation error", func(t *testing.T) {
		svc := new(MockProductService)
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, model.MissingField("name"))

		h := NewProductHandler(svc, 1<<20, zerolog.Nop())
		req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader("{}"))
		w := serve("POST /api/admin/products", h.Create, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "name is required", decodeError(t, w).Message)
	})
}

func TestProductHandler_UpdateAndDelete(t *testing.T) {
	svc := new(MockProductService)
	svc.On("Update", mock.Anything, "p1", mock.Anything, (*media.Image)(nil)).Return(&model.Product{ID: "p1"}, nil)
	svc.On("Delete", mock.Anything, "p1").Return(nil)
	svc.On("Delete", mock.Anything, "p9").Return(model.ErrProductNotFound)

	h := NewProductHandler(svc, 1<<20, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/admin/products/p1", strings.NewReader(`{"name":"Kale"}`))
	w := serve("PUT /api/admin/products/{id}", h.Update, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/products/p1", nil)
	w = serve("DELETE /api/admin/products/{id}", h.Delete, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/products/p9", nil)
	w = serve("DELETE /api/admin/products/{id}", h.Delete, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
