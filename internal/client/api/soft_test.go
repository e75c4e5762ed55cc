package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/studydeck/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(v any) FetchFunc {
	return func(context.Context) (any, error) { return v, nil }
}

func reject(err error) FetchFunc {
	return func(context.Context) (any, error) { return nil, err }
}

func TestSafeFetchArray(t *testing.T) {
	ctx := context.Background()
	log := logging.Nop()

	arr := []any{map[string]any{"id": float64(1)}, "x"}
	assert.Equal(t, arr, SafeFetchArray(ctx, log, resolve(arr)))

	tests := map[string]FetchFunc{
		"rejected":     reject(errors.New("offline")),
		"http failure": reject(&HTTPError{Status: 500, Message: "boom"}),
		"object":       resolve(map[string]any{"items": []any{1}}),
		"string":       resolve("nope"),
		"nil":          resolve(nil),
		"typed nil":    resolve([]any(nil)),
		"panicking":    func(context.Context) (any, error) { panic("bug") },
		"number":       resolve(float64(3)),
		"empty object": resolve(map[string]any{}),
	}
	for name, fetch := range tests {
		t.Run(name, func(t *testing.T) {
			got := SafeFetchArray(ctx, log, fetch)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestSafeFetchObject(t *testing.T) {
	ctx := context.Background()
	log := logging.Nop()
	def := map[string]any{"current": float64(0)}

	obj := map[string]any{"current": float64(4)}
	assert.Equal(t, obj, SafeFetchObject(ctx, log, resolve(obj), def))

	truthyValues := []any{map[string]any{}, []any{}, "x", float64(1), true}
	for _, v := range truthyValues {
		assert.Equal(t, v, SafeFetchObject(ctx, log, resolve(v), def))
	}

	fallbacks := map[string]FetchFunc{
		"rejected":  reject(errors.New("offline")),
		"nil":       resolve(nil),
		"false":     resolve(false),
		"zero":      resolve(float64(0)),
		"nan":       resolve(math.NaN()),
		"empty str": resolve(""),
		"panicking": func(context.Context) (any, error) { panic("bug") },
	}
	for name, fetch := range fallbacks {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, def, SafeFetchObject(ctx, log, fetch, def))
		})
	}
}

func TestFetcher_WithClient(t *testing.T) {
	srv := newServer(t, func(r chi.Router) {
		r.Get("/decks", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `[{"id":1},{"id":2}]`)
		})
		r.Get("/users/me/streak", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"error":"db down"}`)
		})
	})

	rec := &fakeRecorder{}
	c := newClient(t, srv.URL, nil, WithMetrics(rec))
	ctx := context.Background()
	log := logging.Nop()

	decks := SafeFetchArray(ctx, log, c.Fetcher("/decks"))
	assert.Len(t, decks, 2)

	def := map[string]any{"current": float64(0)}
	assert.Equal(t, def, SafeFetchObject(ctx, log, c.Fetcher("/users/me/streak"), def))
	assert.Equal(t, []string{"/users/me/streak"}, rec.soft)
}

func TestConvert(t *testing.T) {
	var out struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, Convert(map[string]any{"id": float64(3), "title": "Verbs"}, &out))
	assert.Equal(t, int64(3), out.ID)
	assert.Equal(t, "Verbs", out.Title)

	assert.Error(t, Convert("str", &out))
}
