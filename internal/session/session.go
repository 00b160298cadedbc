package session

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/shopit/shopclient/internal/domain"
	"github.com/shopit/shopclient/internal/storage"
)

// Store persists the auth token and user profile display fields across
// restarts. Display purposes only; the security boundary is the server-side
// cookie.
type Store struct {
	slots  storage.SlotStore
	logger *zap.Logger
}

func NewStore(slots storage.SlotStore, logger *zap.Logger) *Store {
	return &Store{slots: slots, logger: logger}
}

// Save persists the token and profile after login/signup.
func (s *Store) Save(ctx context.Context, token string, user domain.UserProfile) error {
	if err := s.slots.Set(ctx, storage.SlotToken, []byte(token)); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.slots.Set(ctx, storage.SlotUser, data)
}

// Token returns the persisted token, or "" when absent.
func (s *Store) Token(ctx context.Context) string {
	data, err := s.slots.Get(ctx, storage.SlotToken)
	if err != nil {
		return ""
	}
	return string(data)
}

// User returns the persisted profile. A missing or corrupt slot yields an
// empty profile.
func (s *Store) User(ctx context.Context) domain.UserProfile {
	var user domain.UserProfile
	data, err := s.slots.Get(ctx, storage.SlotUser)
	if err != nil {
		return user
	}
	if err := json.Unmarshal(data, &user); err != nil {
		s.logger.Warn("Persisted user profile is corrupt", zap.Error(err))
	}
	return user
}

// Clear removes the persisted identity on logout.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.slots.Delete(ctx, storage.SlotToken); err != nil {
		return err
	}
	return s.slots.Delete(ctx, storage.SlotUser)
}
