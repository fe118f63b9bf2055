package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/flicky/haiti-storefront/internal/cart"
	"github.com/flicky/haiti-storefront/internal/checkout"
	"github.com/flicky/haiti-storefront/internal/model"
)

var ErrInvalidLanguage = errors.New("invalid language")

// SessionStore holds per-session shopper state.
type SessionStore interface {
	cart.Store
	LoadCheckout(ctx context.Context, sessionID string) (*checkout.State, error)
	SaveCheckout(ctx context.Context, sessionID string, state checkout.State) error
	DeleteCheckout(ctx context.Context, sessionID string) error
	LoadLanguage(ctx context.Context, sessionID string) (model.Language, error)
	SaveLanguage(ctx context.Context, sessionID string, lang model.Language) error
}

type SessionService struct {
	store SessionStore
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

func (s *SessionService) Language(ctx context.Context, sessionID string) (model.Language, error) {
	return s.store.LoadLanguage(ctx, sessionID)
}

func (s *SessionService) SetLanguage(ctx context.Context, sessionID string, lang model.Language) error {
	if !lang.Valid() {
		return ErrInvalidLanguage
	}
	if err := s.store.SaveLanguage(ctx, sessionID, lang); err != nil {
		return fmt.Errorf("set language: %w", err)
	}
	return nil
}
