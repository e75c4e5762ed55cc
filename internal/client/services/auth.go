package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/studydeck/internal/client/api"
	"github.com/dmitrijs2005/studydeck/internal/client/models"
	"github.com/dmitrijs2005/studydeck/internal/client/session"
	"github.com/dmitrijs2005/studydeck/internal/client/tokenstore"
	"github.com/dmitrijs2005/studydeck/internal/logging"
)

// AuthService defines the authentication flows used by the CLI.
//
// Contract:
//   - Login, Register: authenticate against the server and persist the
//     returned credential through the session store.
//   - Restore: rebuild the session from a persisted credential at startup.
//   - Logout: end the session locally, telling the server when reachable.
//   - Ping: check server liveness.
//   - Current: snapshot of the session.
//
// All methods honor context cancellation and deadlines.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Restore(ctx context.Context) (session.AuthState, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Current() session.AuthState
}

// AuthAPI is the subset of the API client the auth flows need.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	api     AuthAPI
	session *session.Store
	log     logging.Logger
}

// NewAuthService binds the auth flows to an API client and a session store.
func NewAuthService(client AuthAPI, store *session.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{api: client, session: store, log: log}
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	resp, err := a.api.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return a.establish(ctx, resp)
}

func (a *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	resp, err := a.api.Register(ctx, api.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return a.establish(ctx, resp)
}

func (a *authService) establish(ctx context.Context, resp *api.AuthResponse) (*models.User, error) {
	if err := a.session.SetAuth(ctx, resp.User, resp.Token); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	a.log.Info(ctx, "signed in", "username", username(resp.User))
	return resp.User.Clone(), nil
}

// Restore loads the persisted credential and, if there is one, fetches the
// profile it belongs to. A 401 ends the session. Any other failure keeps
// the credential so the session can be completed once the server is back.
// Loading is cleared on every path before the state is returned.
func (a *authService) Restore(ctx context.Context) (session.AuthState, error) {
	err := a.restore(ctx)
	a.session.SetLoading(false)
	return a.session.State(), err
}

func (a *authService) restore(ctx context.Context) error {
	token, err := a.session.LoadToken(ctx)
	if err != nil {
		if errors.Is(err, tokenstore.ErrCorruptCredential) {
			a.log.Warn(ctx, "discarding unreadable credential", "error", err)
			return a.session.Logout(ctx)
		}
		return err
	}
	if token == "" {
		return nil
	}

	user, err := a.api.Me(ctx)
	switch {
	case err == nil:
		a.session.SetUser(user)
	case errors.Is(err, api.ErrUnauthorized):
		a.log.Info(ctx, "stored credential rejected, signing out")
		return a.session.Logout(ctx)
	default:
		a.log.Warn(ctx, "profile unavailable, keeping credential", "error", err)
	}
	return nil
}

// Logout tells the server (best effort) and then clears the session.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Debug(ctx, "server logout failed", "error", err)
	}
	return a.session.Logout(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.api.Ping(ctx)
}

func (a *authService) Current() session.AuthState {
	return a.session.State()
}

func username(u *models.User) string {
	if u == nil {
		return ""
	}
	return u.Username
}
