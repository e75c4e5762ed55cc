package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/studydeck/internal/client/api"
	"github.com/dmitrijs2005/studydeck/internal/client/config"
	"github.com/dmitrijs2005/studydeck/internal/client/metrics"
	"github.com/dmitrijs2005/studydeck/internal/client/repositories/kv"
	"github.com/dmitrijs2005/studydeck/internal/client/tokenstore"
	"github.com/dmitrijs2005/studydeck/internal/logging"
	"golang.org/x/time/rate"
)

// openTokenStore picks the credential store of the platform: plain local
// storage on web, sealed storage on mobile.
func openTokenStore(ctx context.Context, c *config.Config, repo kv.Repository) (tokenstore.Store, error) {
	switch c.Platform {
	case config.PlatformWeb:
		return tokenstore.NewLocalStore(repo), nil
	case config.PlatformMobile:
		s, err := tokenstore.NewSecureStore(ctx, repo, c.DeviceSecret)
		if err != nil {
			return nil, fmt.Errorf("open secure store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown platform %q", c.Platform)
	}
}

// apiOptions translates the config into API client options. Only the web
// variant keeps a cookie jar.
func apiOptions(c *config.Config, log logging.Logger, rec metrics.Recorder) []api.Option {
	opts := []api.Option{
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(log),
		api.WithMetrics(rec),
	}
	if c.RequestsPerSecond > 0 {
		burst := int(math.Max(1, math.Ceil(c.RequestsPerSecond)))
		opts = append(opts, api.WithRateLimiter(rate.NewLimiter(rate.Limit(c.RequestsPerSecond), burst)))
	}
	if c.Platform == config.PlatformWeb {
		opts = append(opts, api.WithSameOriginCookies(c.Origin))
	}
	return opts
}
