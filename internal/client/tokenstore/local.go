package tokenstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/studydeck/internal/client/repositories/kv"
	"github.com/dmitrijs2005/studydeck/internal/common"
)

// LocalStore keeps the credential as plain text under common.AuthTokenKey.
// It is the counterpart of browser local storage.
type LocalStore struct {
	repo kv.Repository
}

func NewLocalStore(repo kv.Repository) *LocalStore {
	return &LocalStore{repo: repo}
}

func (s *LocalStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(v), nil
}

func (s *LocalStore) Set(ctx context.Context, token string) error {
	if token == "" {
		if err := s.repo.Delete(ctx, common.AuthTokenKey); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		return nil
	}
	if err := s.repo.Set(ctx, common.AuthTokenKey, []byte(token)); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}
