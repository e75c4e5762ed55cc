package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/studydeck/internal/flagx"
)

var knownFlags = []string{"-p", "-a", "-o", "-d", "-t", "-i", "-r", "-m", "-l"}

// parseFlags overlays cfg with the flags in args it knows about. Anything
// else on the command line is ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("studydeck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	platform := fs.String("p", string(cfg.Platform), "platform variant (web or mobile)")
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.Origin, "o", cfg.Origin, "web origin")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "outbound requests per second, 0 disables")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.Platform = Platform(*platform)

	// only override durations that were given, so sub-second values from
	// the file or environment survive
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		case "i":
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
