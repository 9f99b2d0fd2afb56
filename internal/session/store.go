package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/boombim-admin/internal/logger"
	"github.com/oshokin/boombim-admin/internal/repository/storage"
)

// TokenKey is the storage key of the access token.
const TokenKey = "admin_access_token"

// Store keeps the access token in a durable key-value repository.
type Store struct {
	// repo persists the token between runs.
	repo storage.Repository
}

// NewStore creates a token store backed by repo.
func NewStore(repo storage.Repository) *Store {
	return &Store{
		repo: repo,
	}
}

// Set persists token, replacing any previous one. An empty token clears the store.
func (s *Store) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	if err := s.repo.Set(ctx, TokenKey, token); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}

	return nil
}

// Get returns the stored token and whether a non-empty one exists.
func (s *Store) Get(ctx context.Context) (string, bool) {
	if s == nil || s.repo == nil {
		return "", false
	}

	token, err := s.repo.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.WarnKV(ctx, "Session storage is unreadable, treating as logged out", "error", err)
		}

		return "", false
	}

	return token, token != ""
}

// Clear removes the stored token. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, TokenKey); err != nil {
		return fmt.Errorf("clear access token: %w", err)
	}

	return nil
}

// IsAuthenticated reports whether a non-empty token is stored.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Get(ctx)

	return ok
}
