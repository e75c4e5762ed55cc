package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, PlatformWeb, c.Platform)
	assert.Empty(t, c.APIBaseURL)
	assert.Equal(t, "http://localhost:5000", c.Origin)
	assert.Equal(t, "studydeck.db", c.DatabasePath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10.0, c.RequestsPerSecond)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_NoSources(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	want := defaults()
	if diff := cmp.Diff(&want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"platform":              "mobile",
		"api_base_url":          "https://file.example",
		"database_path":         "/from/file.db",
		"online_check_interval": "10s",
		"log_level":             "warn",
	})
	t.Setenv("STUDYDECK_API_URL", "https://env.example")
	t.Setenv("STUDYDECK_DB", "/from/env.db")
	t.Setenv("STUDYDECK_DEVICE_SECRET", "s3cret")

	cfg, err := Load([]string{"-c", path, "-d", "/from/flag.db", "-t", "30"})
	require.NoError(t, err)

	assert.Equal(t, PlatformMobile, cfg.Platform, "file only")
	assert.Equal(t, "https://env.example", cfg.APIBaseURL, "env beats file")
	assert.Equal(t, "/from/flag.db", cfg.DatabasePath, "flag beats env and file")
	assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval, "file only")
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout, "flag only")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "s3cret", cfg.DeviceSecret)
}

func TestLoad_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "missing file", args: []string{"-c", filepath.Join(t.TempDir(), "nope.json")}},
		{name: "invalid json", args: []string{"-c", bad}},
		{name: "bad env duration", env: map[string]string{"STUDYDECK_REQUEST_TIMEOUT": "soon"}},
		{name: "bad flag value", args: []string{"-i", "abc"}},
		{name: "unknown platform", args: []string{"-p", "desktop"}},
		{name: "negative rate", args: []string{"-r", "-1"}},
		{name: "zero timeout", args: []string{"-t", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags(t *testing.T) {
	cfg := defaults()
	args := []string{"-p", "mobile", "-a", "https://h.example/v1", "-i", "7", "-r", "2.5", "-m", ":9100", "-l", "debug", "extra", "-unknown", "x"}

	require.NoError(t, parseFlags(&cfg, args))

	want := defaults()
	want.Platform = PlatformMobile
	want.APIBaseURL = "https://h.example/v1"
	want.OnlineCheckInterval = 7 * time.Second
	want.RequestsPerSecond = 2.5
	want.MetricsAddr = ":9100"
	want.LogLevel = "debug"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags_KeepsSubSecondDurationsWhenNotGiven(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond

	require.NoError(t, parseFlags(&cfg, []string{"-l", "debug"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}

func TestParseJson_OnlyOverridesPresentKeys(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"request_timeout": 2_000_000_000})
	cfg := defaults()

	require.NoError(t, parseJson(&cfg, []string{"-config", path}))

	want := defaults()
	want.RequestTimeout = 2 * time.Second
	assert.Equal(t, want, cfg)
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		base     string
		origin   string
		want     string
		wantErr  bool
	}{
		{name: "web default resolves against origin", platform: PlatformWeb, origin: "http://localhost:5000", want: "http://localhost:5000/api"},
		{name: "web origin with path", platform: PlatformWeb, origin: "https://app.example/study/", want: "https://app.example/api"},
		{name: "mobile default", platform: PlatformMobile, want: "https://api.studydeck.app"},
		{name: "explicit absolute", platform: PlatformWeb, base: "https://api.example/v2/", want: "https://api.example/v2"},
		{name: "explicit relative", platform: PlatformMobile, base: "/svc", origin: "https://m.example", want: "https://m.example/svc"},
		{name: "relative without origin", platform: PlatformWeb, base: "/api", origin: "", wantErr: true},
		{name: "unsupported scheme", platform: PlatformMobile, base: "ftp://files.example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Platform: tt.platform, APIBaseURL: tt.base, Origin: tt.origin}
			got, err := c.BaseURL()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
