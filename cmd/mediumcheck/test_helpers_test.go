package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediumcheck/internal/config"
	"mediumcheck/internal/testsupport"
)

const samplePage = `<!doctype html>
<html><head><title>ignored</title></head>
<body>
<h1>Now Playing</h1>
<ul>
  <li><a href="#">Bohemian Rhapsody</a> - <span class="artist">Queen</span></li>
  <li>Inception</li>
</ul>
<p><img src="cover.png"></p>
</body></html>`

type cliTestEnv struct {
	cfg        *config.Config
	kodi       *testsupport.FakeKodi
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("KODI_URL", "")
	t.Setenv("KODI_USERNAME", "")
	t.Setenv("KODI_PASSWORD", "")

	fk := testsupport.NewFakeKodi(t,
		[]testsupport.FakeSong{
			{Title: "Bohemian Rhapsody", Artist: []string{"Queen"}, Album: "A Night at the Opera"},
			{Title: "Heroes", Artist: []string{"David Bowie"}, Album: "Heroes"},
		},
		[]testsupport.FakeMovie{
			{Title: "Inception", Year: 2010, File: "/movies/Inception.mkv"},
		},
	)
	cfg := testsupport.NewConfig(t, testsupport.WithKodiURL(fk.URL()), testsupport.WithDebounce(10))

	configPath := filepath.Join(homeDir, ".config", "mediumcheck", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		kodi:       fk,
		configPath: configPath,
		baseDir:    base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[kodi]\nurl = %q\nusername = %q\npassword = %q\n\n[inspect]\ndebounce_ms = %d\n\n[paths]\nlog_dir = %q\nsocket_path = %q\n",
		cfg.Kodi.URL,
		cfg.Kodi.Username,
		cfg.Kodi.Password,
		cfg.Inspect.DebounceMS,
		cfg.Paths.LogDir,
		cfg.Paths.SocketPath,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
