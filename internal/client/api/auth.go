package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/studydeck/internal/client/models"
)

// ErrNoToken is returned when a login or registration succeeded on the
// server but the response carried no credential.
var ErrNoToken = errors.New("auth response carried no token")

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (c *Client) authenticate(ctx context.Context, endpoint string, body any) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.Do(ctx, endpoint, &resp, WithMethod(http.MethodPost), WithJSONBody(body)); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	return &resp, nil
}

// Login exchanges credentials for a token: POST /auth/login.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", req)
}

// Register creates an account and signs it in: POST /auth/register.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", req)
}

// Me fetches the profile of the current credential: GET /auth/me. Both a
// bare user object and a {"user": {...}} envelope are accepted.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	p, err := c.do(ctx, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	raw := p.raw

	var envelope struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.User != nil {
		return envelope.User, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		c.log.Warn(ctx, "profile response does not match user shape", "error", err)
		return nil, &MalformedResponseError{Status: p.status, cause: err}
	}
	if u.ID == 0 && u.Username == "" {
		return nil, &MalformedResponseError{Status: p.status, cause: errors.New("empty profile")}
	}
	return &u, nil
}

// Logout asks the server to drop its side of the session (for example the
// session cookie): POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, "/auth/logout", nil, WithMethod(http.MethodPost))
}

// Ping checks server liveness: GET /health.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, "/health", nil)
}
