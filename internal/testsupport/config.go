package testsupport

import (
	"path/filepath"
	"testing"

	"mediumcheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Kodi.Username = "kodi"
	cfgVal.Kodi.Password = "kodi"
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.SocketPath = filepath.Join(base, "mc.sock")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithKodiURL points the test config at a Kodi endpoint, usually a FakeKodi.
func WithKodiURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Kodi.URL = url
	}
}

// WithDebounce overrides the hover debounce in milliseconds.
func WithDebounce(ms int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Inspect.DebounceMS = ms
	}
}
