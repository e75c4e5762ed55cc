package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/dmitrijs2005/studydeck/internal/logging"
)

// FetchFunc is a pending read wrapped by the soft adapters.
type FetchFunc func(ctx context.Context) (any, error)

// Fetcher binds a Request call to endpoint for use with the soft adapters.
func (c *Client) Fetcher(endpoint string, opts ...RequestOption) FetchFunc {
	return func(ctx context.Context) (any, error) {
		v, err := c.Request(ctx, endpoint, opts...)
		if err != nil {
			c.metrics.RecordSoftFailure(endpoint)
		}
		return v, err
	}
}

// run calls fetch and turns a panic into an error.
func run(ctx context.Context, fetch FetchFunc) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("soft read panicked: %v", p)
		}
	}()
	return fetch(ctx)
}

// SafeFetchArray returns the fetched value when it is a JSON array and an
// empty (non-nil) slice in every other case. Failures are logged and
// swallowed.
func SafeFetchArray(ctx context.Context, log logging.Logger, fetch FetchFunc) []any {
	v, err := run(ctx, fetch)
	if err != nil {
		log.Warn(ctx, "soft read failed, using empty list", "error", err)
		return []any{}
	}

	arr, ok := v.([]any)
	if !ok || arr == nil {
		log.Debug(ctx, "soft read returned a non-array value, using empty list", "type", fmt.Sprintf("%T", v))
		return []any{}
	}
	return arr
}

// SafeFetchObject returns the fetched value when it is truthy and def
// otherwise. Failures are logged and swallowed.
func SafeFetchObject(ctx context.Context, log logging.Logger, fetch FetchFunc, def any) any {
	v, err := run(ctx, fetch)
	if err != nil {
		log.Warn(ctx, "soft read failed, using default", "error", err)
		return def
	}
	if !truthy(v) {
		return def
	}
	return v
}

// truthy follows JSON-value truthiness: null, false, 0, NaN and "" are
// falsy; objects and arrays, even empty ones, are truthy.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

// Convert re-decodes a generic JSON value (as returned by Request or the soft
// adapters) into out.
func Convert(v any, out any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
