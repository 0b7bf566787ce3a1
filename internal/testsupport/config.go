package testsupport

import (
	"path/filepath"
	"testing"

	"ladle/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test. It
// defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Bookmarks.DBPath = filepath.Join(base, "bookmarks.db")
	cfg.Output.Color = "never"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithAgentURL points the test config at the given agent base URL, usually an
// httptest server.
func WithAgentURL(url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Agent.BaseURL = url
	}
}

// WithLanguage sets the display language on the test config.
func WithLanguage(lang string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Output.Language = lang
	}
}
