package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Platform selects the client variant.
type Platform string

const (
	// PlatformWeb keeps the credential in plain local storage and sends
	// same-origin cookies.
	PlatformWeb Platform = "web"
	// PlatformMobile keeps the credential sealed and sends no cookies.
	PlatformMobile Platform = "mobile"
)

const (
	DefaultWebBaseURL    = "/api"
	DefaultMobileBaseURL = "https://api.studydeck.app"
)

// Config holds runtime settings for the StudyDeck CLI.
type Config struct {
	Platform            Platform      `env:"STUDYDECK_PLATFORM"`
	APIBaseURL          string        `env:"STUDYDECK_API_URL"`
	Origin              string        `env:"STUDYDECK_ORIGIN"`
	DatabasePath        string        `env:"STUDYDECK_DB"`
	DeviceSecret        string        `env:"STUDYDECK_DEVICE_SECRET"`
	RequestTimeout      time.Duration `env:"STUDYDECK_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"STUDYDECK_ONLINE_CHECK"`
	RequestsPerSecond   float64       `env:"STUDYDECK_RPS"`
	MetricsAddr         string        `env:"STUDYDECK_METRICS_ADDR"`
	LogLevel            string        `env:"STUDYDECK_LOG_LEVEL"`
}

// LoadDefaults populates c with defaults. APIBaseURL stays empty so that
// BaseURL can pick the platform default.
func (c *Config) LoadDefaults() {
	c.Platform = PlatformWeb
	c.APIBaseURL = ""
	c.Origin = "http://localhost:5000"
	c.DatabasePath = "studydeck.db"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestsPerSecond = 10
	c.MetricsAddr = ""
	c.LogLevel = "info"
}

// Load builds a Config from defaults, the JSON file, the environment and
// args (the command line without the program name), in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Validate reports settings the client cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Platform != PlatformWeb && c.Platform != PlatformMobile {
		errs = append(errs, fmt.Errorf("unknown platform %q", c.Platform))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, errors.New("online check interval must be positive"))
	}
	if c.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("requests per second must not be negative"))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if _, err := c.BaseURL(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BaseURL returns the absolute API address without a trailing slash.
// An empty APIBaseURL selects the platform default; a relative one is
// resolved against Origin.
func (c *Config) BaseURL() (string, error) {
	base := strings.TrimSpace(c.APIBaseURL)
	if base == "" {
		base = DefaultWebBaseURL
		if c.Platform == PlatformMobile {
			base = DefaultMobileBaseURL
		}
	}

	ref, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid api base url %q: %w", base, err)
	}
	if !ref.IsAbs() {
		origin, err := url.Parse(strings.TrimSpace(c.Origin))
		if err != nil || !origin.IsAbs() || origin.Host == "" {
			return "", fmt.Errorf("relative api base url %q needs an absolute origin, got %q", base, c.Origin)
		}
		ref = origin.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", fmt.Errorf("api base url %q must use http or https", ref.String())
	}

	return strings.TrimRight(ref.String(), "/"), nil
}
