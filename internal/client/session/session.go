// Package session holds the reactive authentication state of the client.
//
// Store is the only writer of AuthState. Every mutation is one atomic
// replace of the record, and mutations are serialized by a single mutex that
// also covers the token-store write, so a Logout racing a SetAuth can never
// leave the persisted credential and the in-memory state disagreeing.
// The last mutation to acquire the lock wins.
//
// State machine:
//
//	Loading ──LoadToken──▶ TokenOnly ──SetUser──▶ Authenticated
//	   │                                              ▲
//	   ├──────────────────SetAuth─────────────────────┘
//	   └──(no token, SetLoading(false))──▶ Unauthenticated
//
// Logout moves any state to Unauthenticated. Loading is re-entered only by
// constructing a new Store.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/studydeck/internal/client/models"
	"github.com/dmitrijs2005/studydeck/internal/client/tokenstore"
	"github.com/dmitrijs2005/studydeck/internal/common"
)

// ErrEmptyToken is returned by SetAuth when no credential is given.
var ErrEmptyToken = common.ErrEmptyToken

// AuthState is a snapshot of the session. IsAuthenticated is true exactly
// when Token is non-empty. User may be nil while authenticated, until the
// profile has been fetched.
type AuthState struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// Phase names the state-machine position of s.
func (s AuthState) Phase() Phase {
	switch {
	case s.IsAuthenticated && s.User != nil:
		return PhaseAuthenticated
	case s.IsAuthenticated:
		return PhaseTokenOnly
	case s.IsLoading:
		return PhaseLoading
	default:
		return PhaseUnauthenticated
	}
}

type Phase string

const (
	PhaseLoading         Phase = "loading"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseTokenOnly       Phase = "token_only"
	PhaseUnauthenticated Phase = "unauthenticated"
)

func (s AuthState) clone() AuthState {
	s.User = s.User.Clone()
	return s
}

// Store is the session state container.
type Store struct {
	mu     sync.Mutex
	state  AuthState
	tokens tokenstore.Store

	subMu  sync.Mutex
	subs   map[int]chan AuthState
	nextID int
}

// New returns a Store in the Loading state.
func New(tokens tokenstore.Store) *Store {
	return &Store{
		state:  AuthState{IsLoading: true},
		tokens: tokens,
		subs:   make(map[int]chan AuthState),
	}
}

// State returns a copy of the current state.
func (s *Store) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// SetAuth persists token and marks the session authenticated as user.
// On any error the state is left untouched.
func (s *Store) SetAuth(ctx context.Context, user *models.User, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tokens.Set(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.replace(AuthState{User: user.Clone(), Token: token, IsAuthenticated: true})
	return nil
}

// Logout clears the persisted token and resets the state. The in-memory
// state is reset even when clearing storage fails; that error is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.tokens.Set(ctx, "")
	s.replace(AuthState{})

	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// LoadToken reads the persisted credential. If there is one, Token is set
// (IsAuthenticated follows it) while User and IsLoading are kept; the token
// is returned. If there is none, "" is returned and nothing changes.
func (s *Store) LoadToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.tokens.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return "", nil
	}

	next := s.state
	next.Token = token
	next.IsAuthenticated = true
	s.replace(next)
	return token, nil
}

// SetUser replaces only the user.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.User = user.Clone()
	s.replace(next)
}

// SetLoading replaces only the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	next.IsLoading = loading
	s.replace(next)
}

// replace installs next and notifies subscribers. Callers hold s.mu.
func (s *Store) replace(next AuthState) {
	s.state = next
	s.publish(next)
}
