// Package auth signs admins in and tracks their sessions.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"produce-kart/internal/model"

	"github.com/rs/zerolog"
)

// EventType distinguishes session events.
type EventType string

const (
	EventSignedIn  EventType = "signed_in"
	EventSignedOut EventType = "signed_out"
)

// Event is delivered to subscribers whenever an admin signs in or out.
type Event struct {
	Type  EventType
	Email string
	At    time.Time
}

// Authenticator signs admins in through a Provider and issues sessions.
type Authenticator struct {
	provider Provider
	sessions SessionStore
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu        sync.RWMutex
	listeners map[int]func(Event)
	nextID    int
}

// NewAuthenticator creates an Authenticator issuing sessions valid for ttl.
func NewAuthenticator(provider Provider, sessions SessionStore, ttl time.Duration, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		provider:  provider,
		sessions:  sessions,
		ttl:       ttl,
		logger:    logger.With().Str("component", "auth").Logger(),
		now:       time.Now,
		listeners: make(map[int]func(Event)),
	}
}

// SignIn verifies the credentials and starts a new session.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*Session, error) {
	identity, err := a.provider.VerifyPassword(ctx, email, password)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			a.logger.Warn().Str("email", email).Str("reason", domainErr.Message).Msg("sign in rejected")
			return nil, domainErr
		}
		a.logger.Error().Err(err).Str("email", email).Msg("sign in failed")
		return nil, ErrSignInFailed
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	sess := &Session{
		Token:     token,
		UID:       identity.UID,
		Email:     identity.Email,
		ExpiresAt: a.now().Add(a.ttl),
	}
	if err := a.sessions.Put(ctx, sess, a.ttl); err != nil {
		a.logger.Error().Err(err).Str("email", identity.Email).Msg("failed to store session")
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	a.logger.Info().Str("email", identity.Email).Msg("admin signed in")
	a.publish(Event{Type: EventSignedIn, Email: identity.Email, At: a.now()})

	return sess, nil
}

// SignOut ends the session identified by token. Unknown tokens are ignored.
func (a *Authenticator) SignOut(ctx context.Context, token string) error {
	sess, err := a.sessions.Get(ctx, token)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}
	if err := a.sessions.Delete(ctx, token); err != nil {
		return err
	}

	a.logger.Info().Str("email", sess.Email).Msg("admin signed out")
	a.publish(Event{Type: EventSignedOut, Email: sess.Email, At: a.now()})
	return nil
}

// Session returns the live session for token, or model.ErrUnauthorised.
func (a *Authenticator) Session(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, model.ErrUnauthorised
	}
	sess, err := a.sessions.Get(ctx, token)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to look up session")
		return nil, err
	}
	if sess == nil {
		return nil, model.ErrUnauthorised
	}
	return sess, nil
}

// Subscribe registers fn for session events and returns a function that
// removes it. fn is called synchronously and must not block.
func (a *Authenticator) Subscribe(fn func(Event)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.listeners[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *Authenticator) publish(ev Event) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, fn := range a.listeners {
		fn(ev)
	}
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
