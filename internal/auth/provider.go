package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"produce-kart/internal/config"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Identity is a verified admin account.
type Identity struct {
	UID   string
	Email string
}

// Provider verifies an email and password pair.
type Provider interface {
	VerifyPassword(ctx context.Context, email, password string) (*Identity, error)
}

// NewProvider creates the provider selected by cfg.Provider.
func NewProvider(ctx context.Context, cfg config.AuthConfig, opts ...option.ClientOption) (Provider, error) {
	switch cfg.Provider {
	case config.AuthProviderLocal:
		return NewLocalProvider(cfg.AdminEmail, cfg.AdminPasswordHash), nil
	case config.AuthProviderIdentity:
		return NewIdentityProvider(ctx, cfg.IdentityAPIKey, opts...)
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

// localProvider authenticates a single admin against a bcrypt hash.
type localProvider struct {
	email string
	hash  []byte
}

// NewLocalProvider creates a provider for one statically configured admin.
func NewLocalProvider(email, passwordHash string) Provider {
	return &localProvider{
		email: strings.ToLower(strings.TrimSpace(email)),
		hash:  []byte(passwordHash),
	}
}

func (p *localProvider) VerifyPassword(_ context.Context, email, password string) (*Identity, error) {
	email, err := normaliseEmail(email)
	if err != nil {
		return nil, err
	}
	if email != p.email {
		return nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}
	return &Identity{UID: "local:" + email, Email: email}, nil
}

// identityProvider verifies passwords with the Google Identity Toolkit.
type identityProvider struct {
	relyingparty *identitytoolkit.RelyingpartyService
}

// NewIdentityProvider creates a provider backed by the identity toolkit
// verifyPassword endpoint, authenticated with a project API key.
func NewIdentityProvider(ctx context.Context, apiKey string, opts ...option.ClientOption) (Provider, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}
	return &identityProvider{relyingparty: svc.Relyingparty}, nil
}

func (p *identityProvider) VerifyPassword(ctx context.Context, email, password string) (*Identity, error) {
	email, err := normaliseEmail(email)
	if err != nil {
		return nil, err
	}

	resp, err := p.relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", mapIdentityError(err))
	}

	return &Identity{UID: resp.LocalId, Email: resp.Email}, nil
}

func normaliseEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
