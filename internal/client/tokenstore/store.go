// Package tokenstore persists the single opaque credential of a client.
//
// All implementations share one contract so that higher layers never branch
// on platform:
//
//   - Get returns the persisted credential, or "" if none was set or it was
//     cleared.
//   - Set(token) persists token; Set("") clears it. Repeating a write is a
//     no-op in effect.
//
// The implementation is picked once, when the application is composed:
// LocalStore for the web variant, SecureStore for the mobile variant, and
// MemoryStore for tests or throwaway sessions.
package tokenstore

import (
	"context"
	"sync"
)

// Store is the credential persistence capability.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
}

// MemoryStore keeps the credential in process memory only.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}
