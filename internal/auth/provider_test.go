package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"produce-kart/internal/config"
	"produce-kart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLocalProvider(t *testing.T) {
	p := NewLocalProvider("Admin@Example.com", hashPassword(t, "s3cret"))
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "Valid credentials", email: "admin@example.com", password: "s3cret"},
		{name: "Email is case insensitive", email: "  ADMIN@example.com ", password: "s3cret"},
		{name: "Wrong password", email: "admin@example.com", password: "nope", wantErr: ErrWrongPassword},
		{name: "Unknown email", email: "other@example.com", password: "s3cret", wantErr: ErrUserNotFound},
		{name: "Malformed email", email: "not-an-email", password: "s3cret", wantErr: ErrInvalidEmail},
		{name: "Display name form rejected", email: "Admin <admin@example.com>", password: "s3cret", wantErr: ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := p.VerifyPassword(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin@example.com", id.Email)
		})
	}
}

func TestMapIdentityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *model.DomainError
	}{
		{name: "Invalid email", err: &googleapi.Error{Message: "INVALID_EMAIL"}, want: ErrInvalidEmail},
		{name: "Disabled", err: &googleapi.Error{Message: "USER_DISABLED"}, want: ErrUserDisabled},
		{name: "Not found", err: &googleapi.Error{Message: "EMAIL_NOT_FOUND"}, want: ErrUserNotFound},
		{name: "Wrong password", err: &googleapi.Error{Message: "INVALID_PASSWORD"}, want: ErrWrongPassword},
		{name: "Rate limited with detail", err: &googleapi.Error{Message: "TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled"}, want: ErrTooManyAttempts},
		{name: "Unknown code", err: &googleapi.Error{Message: "OPERATION_NOT_ALLOWED"}, want: ErrSignInFailed},
		{name: "Transport error", err: errors.New("dial tcp: timeout"), want: ErrSignInFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapIdentityError(tt.err))
		})
	}
}

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verifyPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case req.Email != "owner@shop.ae":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`))
		case req.Password != "pw":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD"}}`))
		default:
			_, _ = w.Write([]byte(`{"localId":"uid-1","email":"owner@shop.ae","idToken":"tok"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestIdentityProvider(t *testing.T) {
	srv := newIdentityServer(t)
	ctx := context.Background()

	p, err := NewProvider(ctx,
		config.AuthConfig{Provider: config.AuthProviderIdentity, IdentityAPIKey: "test-key"},
		option.WithEndpoint(srv.URL+"/"),
	)
	require.NoError(t, err)

	id, err := p.VerifyPassword(ctx, "owner@shop.ae", "pw")
	require.NoError(t, err)
	assert.Equal(t, &Identity{UID: "uid-1", Email: "owner@shop.ae"}, id)

	_, err = p.VerifyPassword(ctx, "owner@shop.ae", "bad")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = p.VerifyPassword(ctx, "ghost@shop.ae", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = p.VerifyPassword(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), config.AuthConfig{Provider: "ldap"})
	require.Error(t, err)
}
