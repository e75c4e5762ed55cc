package tokenstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/studydeck/internal/client/repositories/kv"
	"github.com/dmitrijs2005/studydeck/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) *kv.SQLiteRepository {
	t.Helper()
	repo, db, err := kv.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repo
}

func newSecure(t *testing.T, repo kv.Repository, secret string) *SecureStore {
	t.Helper()
	s, err := NewSecureStore(context.Background(), repo, secret)
	require.NoError(t, err)
	return s
}

func TestStores_Contract(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"local":  func(t *testing.T) Store { return NewLocalStore(newRepo(t)) },
		"secure": func(t *testing.T) Store { return newSecure(t, newRepo(t), "device-secret") },
	}

	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, got, "fresh store holds no credential")

			for _, tok := range []string{"abc", "eyJhbGciOi.payload.sig", "with spaces and ünïcode"} {
				require.NoError(t, s.Set(ctx, tok))
				got, err = s.Get(ctx)
				require.NoError(t, err)
				assert.Equal(t, tok, got)
			}

			require.NoError(t, s.Set(ctx, "same"))
			require.NoError(t, s.Set(ctx, "same"))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, "same", got)

			require.NoError(t, s.Set(ctx, ""))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, s.Set(ctx, ""), "clearing twice is fine")
		})
	}
}

func TestLocalStore_WritesPlainValueUnderTokenKey(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := NewLocalStore(repo)

	require.NoError(t, s.Set(ctx, "tok"))

	raw, err := repo.Get(ctx, common.AuthTokenKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), raw)
}

func TestSecureStore_DoesNotPersistPlaintext(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	s := newSecure(t, repo, "device-secret")

	require.NoError(t, s.Set(ctx, "very-secret-token"))

	raw, err := repo.Get(ctx, common.AuthTokenKey)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.NotContains(t, string(raw), "very-secret-token")
}

func TestSecureStore_WrongSecretIsCorrupt(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, newSecure(t, repo, "right").Set(ctx, "tok"))

	_, err := newSecure(t, repo, "wrong").Get(ctx)
	assert.ErrorIs(t, err, ErrCorruptCredential)
}

func TestSecureStore_SurvivesReopenWithInstallationID(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "studydeck.db")

	repo, db, err := kv.Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, newSecure(t, repo, "").Set(ctx, "persisted"))
	id1, err := InstallationID(ctx, repo)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, db, err = kv.Open(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	got, err := newSecure(t, repo, "").Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)

	id2, err := InstallationID(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}
