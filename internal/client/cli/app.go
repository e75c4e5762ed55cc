package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/studydeck/internal/client/api"
	"github.com/dmitrijs2005/studydeck/internal/client/config"
	"github.com/dmitrijs2005/studydeck/internal/client/metrics"
	"github.com/dmitrijs2005/studydeck/internal/client/models"
	"github.com/dmitrijs2005/studydeck/internal/client/repositories/kv"
	"github.com/dmitrijs2005/studydeck/internal/client/services"
	"github.com/dmitrijs2005/studydeck/internal/client/session"
	"github.com/dmitrijs2005/studydeck/internal/filex"
	"github.com/dmitrijs2005/studydeck/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// studyReader is the part of services.StudyService the REPL uses.
type studyReader interface {
	Decks(ctx context.Context) []models.Deck
	Streak(ctx context.Context) models.Streak
}

type App struct {
	config       *config.Config
	log          logging.Logger
	db           *sql.DB
	session      *session.Store
	authService  services.AuthService
	studyService studyReader
	registry     *prometheus.Registry
	reader       *bufio.Reader
	out          io.Writer

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local database and builds the client stack for the
// configured platform.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	repo, db, err := kv.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	tokens, err := openTokenStore(ctx, c, repo)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	baseURL, err := c.BaseURL()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	apiClient, err := api.New(baseURL, tokens, apiOptions(c, log, metrics.NewCollector(registry))...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.New(tokens)
	log.Info(ctx, "client ready", "platform", c.Platform, "api", apiClient.BaseURL())

	return &App{
		config:       c,
		log:          log,
		db:           db,
		session:      store,
		authService:  services.NewAuthService(apiClient, store, log),
		studyService: services.NewStudyService(apiClient, log),
		registry:     registry,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.Current().IsAuthenticated
}

// checkOnline probes the server once and updates the mode.
func (a *App) checkOnline(ctx context.Context, timeout time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := a.authService.Ping(pingCtx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher probes the server every interval until ctx is
// done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx, a.config.RequestTimeout)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.authService.Current().User; u != nil {
		s = u.Username + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
