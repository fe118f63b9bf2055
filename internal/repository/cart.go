package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flicky/haiti-storefront/internal/cart"
	"github.com/flicky/haiti-storefront/internal/checkout"
	"github.com/flicky/haiti-storefront/internal/model"
)

const (
	// LanguageKey holds the session's display language.
	LanguageKey = "haiti-language"
	checkoutKey = "haiti-checkout"
)

// SessionStore keeps per-session shopper state in Redis: the cart, the
// display language and any checkout in progress. Nothing here is
// authoritative once an order has been placed.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(sessionID, name string) string {
	return "session:" + sessionID + ":" + name
}

func (s *SessionStore) LoadCart(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	var items []model.CartItem
	if _, err := s.get(ctx, sessionKey(sessionID, cart.StorageKey), &items); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return items, nil
}

func (s *SessionStore) SaveCart(ctx context.Context, sessionID string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	if err := s.set(ctx, sessionKey(sessionID, cart.StorageKey), items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// LoadCheckout returns nil when the session has no checkout in progress.
func (s *SessionStore) LoadCheckout(ctx context.Context, sessionID string) (*checkout.State, error) {
	var state checkout.State
	found, err := s.get(ctx, sessionKey(sessionID, checkoutKey), &state)
	if err != nil {
		return nil, fmt.Errorf("load checkout: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

func (s *SessionStore) SaveCheckout(ctx context.Context, sessionID string, state checkout.State) error {
	if err := s.set(ctx, sessionKey(sessionID, checkoutKey), state); err != nil {
		return fmt.Errorf("save checkout: %w", err)
	}
	return nil
}

func (s *SessionStore) DeleteCheckout(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID, checkoutKey)).Err(); err != nil {
		return fmt.Errorf("delete checkout: %w", err)
	}
	return nil
}

// LoadLanguage defaults to Haitian Creole.
func (s *SessionStore) LoadLanguage(ctx context.Context, sessionID string) (model.Language, error) {
	val, err := s.client.Get(ctx, sessionKey(sessionID, LanguageKey)).Result()
	if errors.Is(err, redis.Nil) {
		return model.LanguageHT, nil
	}
	if err != nil {
		return "", fmt.Errorf("load language: %w", err)
	}
	lang := model.Language(val)
	if !lang.Valid() {
		return model.LanguageHT, nil
	}
	return lang, nil
}

func (s *SessionStore) SaveLanguage(ctx context.Context, sessionID string, lang model.Language) error {
	if err := s.client.Set(ctx, sessionKey(sessionID, LanguageKey), string(lang), s.ttl).Err(); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	return nil
}

func (s *SessionStore) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *SessionStore) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}
