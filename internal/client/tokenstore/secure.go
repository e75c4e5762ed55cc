package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studydeck/internal/client/repositories/kv"
	"github.com/dmitrijs2005/studydeck/internal/common"
	"github.com/dmitrijs2005/studydeck/internal/cryptox"
	"github.com/google/uuid"
)

// ErrCorruptCredential is returned by SecureStore.Get when the sealed value
// cannot be opened (wrong device secret or tampered storage).
var ErrCorruptCredential = common.ErrCorruptCredential

// SecureStore seals the credential with AES-GCM before persisting it.
// It is the counterpart of mobile secure storage.
type SecureStore struct {
	repo kv.Repository
	key  []byte
}

// NewSecureStore derives the sealing key from deviceSecret and the
// installation salt (created on first use). An empty deviceSecret falls back
// to the installation id, which only protects against casual reads of the
// database file.
func NewSecureStore(ctx context.Context, repo kv.Repository, deviceSecret string) (*SecureStore, error) {
	salt, err := repo.GetOrCreate(ctx, common.SecureStoreSaltKey, func() ([]byte, error) {
		return common.GenerateRandByteArray(cryptox.SaltSize), nil
	})
	if err != nil {
		return nil, fmt.Errorf("load sealing salt: %w", err)
	}

	secret := []byte(deviceSecret)
	if len(secret) == 0 {
		id, err := InstallationID(ctx, repo)
		if err != nil {
			return nil, err
		}
		secret = []byte(id)
	}

	return &SecureStore{repo: repo, key: cryptox.DeriveKey(secret, salt)}, nil
}

// InstallationID returns the random id of this installation, creating it on
// first call.
func InstallationID(ctx context.Context, repo kv.Repository) (string, error) {
	id, err := repo.GetOrCreate(ctx, common.InstallationIDKey, func() ([]byte, error) {
		return []byte(uuid.NewString()), nil
	})
	if err != nil {
		return "", fmt.Errorf("load installation id: %w", err)
	}
	return string(id), nil
}

func (s *SecureStore) Get(ctx context.Context) (string, error) {
	sealed, err := s.repo.Get(ctx, common.AuthTokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if len(sealed) == 0 {
		return "", nil
	}

	plain, err := cryptox.Open(sealed, s.key)
	if err != nil {
		return "", errors.Join(ErrCorruptCredential, err)
	}
	defer common.WipeByteArray(plain)

	return string(plain), nil
}

func (s *SecureStore) Set(ctx context.Context, token string) error {
	if token == "" {
		if err := s.repo.Delete(ctx, common.AuthTokenKey); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
		return nil
	}

	sealed, err := cryptox.Seal([]byte(token), s.key)
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	if err := s.repo.Set(ctx, common.AuthTokenKey, sealed); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}
