package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"produce-kart/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store persists carts by id. Loading an unknown id yields an empty cart.
type Store interface {
	Load(ctx context.Context, cartID string) (*model.Cart, error)
	Save(ctx context.Context, c *model.Cart) error
	Delete(ctx context.Context, cartID string) error
}

func emptyCart(id string) *model.Cart {
	return &model.Cart{ID: id, Items: []model.CartItem{}}
}

// MemoryStore keeps carts in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]model.Cart
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]model.Cart)}
}

func (s *MemoryStore) Load(_ context.Context, cartID string) (*model.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[cartID]
	if !ok {
		return emptyCart(cartID), nil
	}
	c.Items = append([]model.CartItem{}, c.Items...)
	return &c, nil
}

func (s *MemoryStore) Save(_ context.Context, c *model.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	stored.Items = append([]model.CartItem{}, c.Items...)
	s.carts[c.ID] = stored
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, cartID)
	return nil
}

// RedisStore keeps each cart as a JSON value with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed cart store.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "cart_store").Logger(),
	}
}

func (s *RedisStore) key(cartID string) string {
	return "cart:" + cartID
}

func (s *RedisStore) Load(ctx context.Context, cartID string) (*model.Cart, error) {
	raw, err := s.client.Get(ctx, s.key(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return emptyCart(cartID), nil
		}
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c model.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		// A corrupt entry is treated like a missing one.
		s.logger.Warn().Err(err).Str("cart_id", cartID).Msg("discarding unreadable cart")
		return emptyCart(cartID), nil
	}
	c.ID = cartID
	if c.Items == nil {
		c.Items = []model.CartItem{}
	}
	return &c, nil
}

func (s *RedisStore) Save(ctx context.Context, c *model.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key(c.ID), raw, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Str("cart_id", c.ID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, s.key(cartID)).Err(); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cartID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
