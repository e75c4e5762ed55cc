package cli

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/studydeck/internal/client/metrics"
	"github.com/dmitrijs2005/studydeck/internal/client/session"
)

// Run restores the session, starts the background workers and blocks in the
// REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.logSessionChanges(ctx)

	if a.config.MetricsAddr != "" {
		go a.serveMetrics(ctx, a.config.MetricsAddr)
	}

	a.checkOnline(ctx, a.config.RequestTimeout)
	st, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	} else if st.User != nil {
		a.log.Info(ctx, "session restored", "username", st.User.Username)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.log.Info(ctx, "Welcome to StudyDeck CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin), a.out)
	return nil
}

// logSessionChanges logs every transition of the session phase.
func (a *App) logSessionChanges(ctx context.Context) {
	ch, unsubscribe := a.session.Subscribe()
	defer unsubscribe()

	var last session.Phase
	for {
		select {
		case st, ok := <-ch:
			if !ok {
				return
			}
			if p := st.Phase(); p != last {
				a.log.Debug(ctx, "session changed", "from", last, "to", p)
				last = p
			}
		case <-ctx.Done():
			return
		}
	}
}

// serveMetrics exposes the client's request metrics until ctx is done.
func (a *App) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(a.registry))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info(ctx, "serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error(ctx, "metrics server stopped", "error", err)
	}
}
