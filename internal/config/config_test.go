package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mediumcheck/internal/config"
)

func clearKodiEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"KODI_URL", "KODI_USERNAME", "KODI_PASSWORD"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearKodiEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "mediumcheck", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "mediumcheck", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Kodi.URL != "http://127.0.0.1:8080/jsonrpc" {
		t.Fatalf("unexpected kodi url: %q", cfg.Kodi.URL)
	}
	if cfg.Kodi.Username != "kodi" || cfg.Kodi.Password != "kodi" {
		t.Fatalf("unexpected default credentials: %q/%q", cfg.Kodi.Username, cfg.Kodi.Password)
	}
	if cfg.KodiTimeout().Milliseconds() != 6500 {
		t.Fatalf("unexpected kodi timeout: %s", cfg.KodiTimeout())
	}
	if cfg.Kodi.MaxItems != 6 {
		t.Fatalf("unexpected max items: %d", cfg.Kodi.MaxItems)
	}
	if cfg.Debounce().Milliseconds() != 220 {
		t.Fatalf("unexpected debounce: %s", cfg.Debounce())
	}
	if cfg.CacheTTL().Minutes() != 5 {
		t.Fatalf("unexpected cache ttl: %s", cfg.CacheTTL())
	}
	if cfg.Inspect.ToggleKey != "F8" || cfg.Inspect.ManualKey != "F9" {
		t.Fatalf("unexpected keys: %q %q", cfg.Inspect.ToggleKey, cfg.Inspect.ManualKey)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, filepath.Dir(cfg.Paths.SocketPath)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearKodiEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mediumcheck.toml")

	type payload struct {
		Kodi struct {
			URL      string `toml:"url"`
			Username string `toml:"username"`
			MaxItems int    `toml:"max_items"`
		} `toml:"kodi"`
		Inspect struct {
			DebounceMS int    `toml:"debounce_ms"`
			ToggleKey  string `toml:"toggle_key"`
		} `toml:"inspect"`
	}
	custom := payload{}
	custom.Kodi.URL = "http://media.local:8080/jsonrpc"
	custom.Kodi.Username = "living-room"
	custom.Kodi.MaxItems = 4
	custom.Inspect.DebounceMS = 100
	custom.Inspect.ToggleKey = "f2"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Kodi.URL != "http://media.local:8080/jsonrpc" {
		t.Fatalf("expected url from file, got %q", cfg.Kodi.URL)
	}
	if cfg.Kodi.Username != "living-room" {
		t.Fatalf("expected username from file, got %q", cfg.Kodi.Username)
	}
	if cfg.Kodi.Password != "kodi" {
		t.Fatalf("expected default password, got %q", cfg.Kodi.Password)
	}
	if cfg.Kodi.MaxItems != 4 {
		t.Fatalf("expected max items 4, got %d", cfg.Kodi.MaxItems)
	}
	if cfg.Inspect.DebounceMS != 100 {
		t.Fatalf("expected debounce 100, got %d", cfg.Inspect.DebounceMS)
	}
	if cfg.Inspect.ToggleKey != "F2" {
		t.Fatalf("expected toggle key upper-cased, got %q", cfg.Inspect.ToggleKey)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearKodiEnv(t)
	configPath := filepath.Join(t.TempDir(), "mediumcheck.toml")
	if err := os.WriteFile(configPath, []byte("[kodi]\nuri = \"http://x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "mediumcheck.toml")
	contents := "[kodi]\nurl = \"http://file.local:8080/jsonrpc\"\nusername = \"file-user\"\npassword = \"file-pass\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("KODI_URL", "http://env.local:9090/jsonrpc")
	t.Setenv("KODI_USERNAME", "env-user")
	t.Setenv("KODI_PASSWORD", "env-pass")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Kodi.URL != "http://env.local:9090/jsonrpc" {
		t.Errorf("expected url from env, got %q", cfg.Kodi.URL)
	}
	if cfg.Kodi.Username != "env-user" {
		t.Errorf("expected username from env, got %q", cfg.Kodi.Username)
	}
	if cfg.Kodi.Password != "env-pass" {
		t.Errorf("expected password from env, got %q", cfg.Kodi.Password)
	}
}

func TestCredentialsFileFillsEmptyCredentials(t *testing.T) {
	clearKodiEnv(t)
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.ini")
	if err := os.WriteFile(credsPath, []byte("[kodi]\nusername = ini-user\npassword = ini-pass\n"), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	configPath := filepath.Join(dir, "mediumcheck.toml")
	contents := "[kodi]\nusername = \"file-user\"\ncredentials_file = \"" + credsPath + "\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Kodi.Username != "file-user" {
		t.Fatalf("credentials file must not replace configured username, got %q", cfg.Kodi.Username)
	}
	if cfg.Kodi.Password != "ini-pass" {
		t.Fatalf("expected password from credentials file, got %q", cfg.Kodi.Password)
	}
}

func TestCredentialsFileMissingSection(t *testing.T) {
	clearKodiEnv(t)
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "credentials.ini")
	if err := os.WriteFile(credsPath, []byte("[other]\nusername = x\n"), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	configPath := filepath.Join(dir, "mediumcheck.toml")
	contents := "[kodi]\ncredentials_file = \"" + credsPath + "\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "[kodi]") {
		t.Fatalf("expected missing section error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[kodi]") {
		t.Fatalf("sample config missing kodi section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Kodi.TimeoutMS != 6500 {
		t.Fatalf("sample timeout = %d, want 6500", cfg.Kodi.TimeoutMS)
	}
	if !strings.Contains(cfg.Paths.SocketPath, "mediumcheck") {
		t.Fatalf("expected socket path to contain mediumcheck, got %q", cfg.Paths.SocketPath)
	}
}

func TestEncodeRedactsPassword(t *testing.T) {
	cfg := config.Default()
	cfg.Kodi.Password = "secret"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Fatalf("encoded config leaks password: %s", data)
	}
	if cfg.Kodi.Password != "secret" {
		t.Fatal("Encode must not mutate the receiver")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"https url", func(c *config.Config) { c.Kodi.URL = "https://kodi.local/jsonrpc" }},
		{"missing host", func(c *config.Config) { c.Kodi.URL = "http:///jsonrpc" }},
		{"zero timeout", func(c *config.Config) { c.Kodi.TimeoutMS = 0 }},
		{"zero max items", func(c *config.Config) { c.Kodi.MaxItems = 0 }},
		{"negative rate", func(c *config.Config) { c.Kodi.RequestsPerSecond = -1 }},
		{"negative debounce", func(c *config.Config) { c.Inspect.DebounceMS = -1 }},
		{"zero debounce", func(c *config.Config) { c.Inspect.DebounceMS = 0 }},
		{"zero ttl", func(c *config.Config) { c.Inspect.CacheTTLSeconds = 0 }},
		{"same keys", func(c *config.Config) { c.Inspect.ManualKey = c.Inspect.ToggleKey }},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
