package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/studydeck/internal/client/metrics"
	"github.com/dmitrijs2005/studydeck/internal/logging"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// TokenSource yields the current credential, "" if there is none.
// tokenstore.Store satisfies it.
type TokenSource interface {
	Get(ctx context.Context) (string, error)
}

// Client is the resilient request client. Build it with New.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	log     logging.Logger
	metrics metrics.Recorder
	limiter *rate.Limiter

	timeout      time.Duration
	cookieOrigin string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The client is copied, so
// the caller's value is never mutated.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.http = &cp
		}
	}
}

// WithSameOriginCookies enables cookie participation for origin
// (scheme://host[:port]). Cookies set by other origins are dropped and never
// sent. This is the web variant; leave it out for the mobile variant.
func WithSameOriginCookies(origin string) Option {
	return func(c *Client) { c.cookieOrigin = origin }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.metrics = r
		}
	}
}

// WithRateLimiter makes every request wait for l before it is sent.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithTimeout sets the per-request timeout of the default http.Client.
// It has no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New returns a Client that sends requests to baseURL, which must be an
// absolute http(s) URL. Trailing slashes are removed.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	base := NormalizeBaseURL(baseURL)
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}

	c := &Client{
		baseURL: base,
		tokens:  tokens,
		log:     logging.Nop(),
		metrics: metrics.Nop{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}

	if c.cookieOrigin != "" {
		jar, err := newSameOriginJar(c.cookieOrigin)
		if err != nil {
			return nil, err
		}
		c.http.Jar = jar
	} else {
		c.http.Jar = nil
	}

	return c, nil
}

// BaseURL returns the normalized base address.
func (c *Client) BaseURL() string { return c.baseURL }

// NormalizeBaseURL trims whitespace and trailing slashes.
func NormalizeBaseURL(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}
