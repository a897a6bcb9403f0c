package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"produce-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve routes req through a mux holding only pattern so path values resolve.
func serve(pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// multipartRequest builds a multipart request with optional data JSON and an
// optional file.
func multipartRequest(t *testing.T, method, target, data, fileField, filename string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != "" {
		require.NoError(t, mw.WriteField("data", data))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"Product not found", model.ErrProductNotFound, http.StatusNotFound, model.ErrCodeProductNotFound},
		{"Cart item not found", model.ErrCartItemNotFound, http.StatusNotFound, model.ErrCodeCartItemNotFound},
		{"Offer expired", model.ErrOfferExpired, http.StatusConflict, model.ErrCodeOfferExpired},
		{"Bad credentials", model.NewDomainError(model.ErrCodeInvalidCredentials, "Incorrect password."), http.StatusUnauthorized, model.ErrCodeInvalidCredentials},
		{"Upload failed", model.ErrUploadFailed, http.StatusBadGateway, model.ErrCodeUploadFailed},
		{"Validation", model.MissingField("name"), http.StatusBadRequest, model.ErrCodeMissingField},
		{"Box size", model.ErrBoxSizeNotFound, http.StatusBadRequest, model.ErrCodeBoxSizeNotFound},
		{"Unexpected", errors.New("pool closed"), http.StatusInternalServerError, model.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			writeServiceError(w, tt.err, zerolog.Nop())

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, resp.Error)
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.NotContains(t, resp.Message, "pool closed")
			}
		})
	}
}

func TestDecodeForm(t *testing.T) {
	t.Run("JSON body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"title":"Fresh"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		var in model.MeritInput
		img, ok := decodeForm(w, req, &in, 1<<20, zerolog.Nop())

		require.True(t, ok)
		assert.Nil(t, img)
		assert.Equal(t, "Fresh", in.Title)
	})

	t.Run("Multipart with image", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPost, "/", `{"title":"Fresh"}`, "image", "farm.png", []byte("png-bytes"))
		w := httptest.NewRecorder()

		var in model.MeritInput
		img, ok := decodeForm(w, req, &in, 1<<20, zerolog.Nop())

		require.True(t, ok)
		require.NotNil(t, img)
		assert.Equal(t, "Fresh", in.Title)
		assert.Equal(t, "farm.png", img.Filename)
		body, err := io.ReadAll(img.Body)
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(body))
	})

	t.Run("Multipart without image", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPost, "/", `{"title":"Fresh"}`, "", "", nil)
		w := httptest.NewRecorder()

		var in model.MeritInput
		img, ok := decodeForm(w, req, &in, 1<<20, zerolog.Nop())

		require.True(t, ok)
		assert.Nil(t, img)
	})

	t.Run("Multipart with bad data", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPost, "/", `{title`, "", "", nil)
		w := httptest.NewRecorder()

		var in model.MeritInput
		_, ok := decodeForm(w, req, &in, 1<<20, zerolog.Nop())

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, model.ErrCodeInvalidJSON, decodeError(t, w).Error)
	})

	t.Run("Body too large", func(t *testing.T) {
		req := multipartRequest(t, http.MethodPost, "/", `{"title":"Fresh"}`, "image", "big.png", bytes.Repeat([]byte("a"), 4096))
		w := httptest.NewRecorder()

		var in model.MeritInput
		_, ok := decodeForm(w, req, &in, 512, zerolog.Nop())

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
