package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mediumcheck/internal/ipc"
	"mediumcheck/internal/kodi"
	"mediumcheck/internal/logging"
	"mediumcheck/internal/resolver"
)

func TestCheckCommandRendersTable(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "Bohemian", "Rhapsody", "-", "Queen"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "[OK] FOUND (1)")
	requireContains(t, out, "Bohemian Rhapsody - Queen")
	requireContains(t, out, "♪ Bohemian Rhapsody — Queen — A Night at the Opera")

	queries := env.kodi.Queries()
	if len(queries) != 3 || queries[0].Title != "Bohemian Rhapsody" || queries[1].Title != "Bohemian Rhapsody - Queen" {
		t.Fatalf("unexpected kodi queries: %+v", queries)
	}
}

func TestCheckCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "--json", "Inception"}, env.configPath)
	if err != nil {
		t.Fatalf("check --json: %v", err)
	}
	var status struct {
		OK    bool     `json:"ok"`
		Found bool     `json:"found"`
		Total int      `json:"total"`
		Items []string `json:"items"`
		Used  struct {
			Video string `json:"video"`
		} `json:"used"`
		Details struct {
			VideoTotal int `json:"videoTotal"`
		} `json:"details"`
	}
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if !status.OK || !status.Found || status.Total != 1 || status.Details.VideoTotal != 1 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.Used.Video != "Inception" {
		t.Fatalf("used.video = %q", status.Used.Video)
	}
	if len(status.Items) != 1 || status.Items[0] != "🎬 Inception (2010) — /movies/Inception.mkv" {
		t.Fatalf("items = %q", status.Items)
	}
}

func TestCheckCommandMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "Nothing Here"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "[WARN] missing")
	if strings.Contains(out, "Hit") {
		t.Fatalf("missing lookup should not render a hits table: %q", out)
	}
}

func TestCheckCommandFailureReturnsError(t *testing.T) {
	env := setupCLITestEnv(t)
	env.kodi.FailMethod("AudioLibrary.GetSongs", http.StatusInternalServerError)

	out, _, err := runCLI(t, []string{"check", "Inception"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for failed lookup")
	}
	requireContains(t, err.Error(), "lookup failed: HTTP 500")
	requireContains(t, out, "[ERROR] HTTP 500")

	for _, q := range env.kodi.Queries() {
		if q.Method == "VideoLibrary.GetMovies" {
			t.Fatal("video partition should not be queried after audio failure")
		}
	}
}

func TestCheckCommandRequiresText(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"check", "  "}, env.configPath); err == nil {
		t.Fatal("expected error for blank text")
	}
}

func TestCheckCommandPing(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", "--ping"}, env.configPath)
	if err != nil {
		t.Fatalf("check --ping: %v", err)
	}
	requireContains(t, out, "reachable at "+env.kodi.URL())
	if len(env.kodi.Queries()) != 0 {
		t.Fatal("ping should not run library searches")
	}
}

func TestCheckCommandThroughServer(t *testing.T) {
	env := setupCLITestEnv(t)

	client, err := kodi.New(kodi.Options{URL: env.kodi.URL()})
	if err != nil {
		t.Fatalf("kodi.New: %v", err)
	}
	socket := filepath.Join(env.baseDir, "srv.sock")
	srv, err := ipc.NewServer(context.Background(), socket, resolver.New(client), logging.NewNop())
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	out, _, err := runCLI(t, []string{"--socket", socket, "check", "Heroes"}, env.configPath)
	if err != nil {
		t.Fatalf("check via socket: %v", err)
	}
	requireContains(t, out, "♪ Heroes — David Bowie — Heroes")
}

func TestCheckCommandMissingSocket(t *testing.T) {
	env := setupCLITestEnv(t)

	socket := filepath.Join(env.baseDir, "absent.sock")
	_, _, err := runCLI(t, []string{"--socket", socket, "check", "Heroes"}, env.configPath)
	if err == nil {
		t.Fatal("expected dial error")
	}
	requireContains(t, err.Error(), "mediumcheck serve")
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeFile(t, env.baseDir, "bad.toml", "[kodi]\nurl = \"https://kodi.local/jsonrpc\"\n")

	if _, _, err := runCLI(t, []string{"check", "Heroes"}, path); err == nil {
		t.Fatal("expected validation error for https url")
	}
}

func TestServeCommandAnswersChecks(t *testing.T) {
	env := setupCLITestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd := newRootCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", env.configPath, "serve"})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	socket := env.cfg.Paths.SocketPath
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(socket); err == nil {
			break
		}
		select {
		case err := <-done:
			if err != nil && strings.Contains(err.Error(), "operation not permitted") {
				t.Skipf("skipping serve test: %v", err)
			}
			t.Fatalf("serve exited early: %v", err)
		default:
		}
		if time.Now().After(deadline) {
			t.Fatal("serve did not create its socket")
		}
		time.Sleep(10 * time.Millisecond)
	}

	out, _, err := runCLI(t, []string{"--socket", socket, "check", "Inception"}, env.configPath)
	if err != nil {
		t.Fatalf("check via serve: %v", err)
	}
	requireContains(t, out, "[OK] FOUND (1)")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
	if _, err := os.Stat(socket); !os.IsNotExist(err) {
		t.Fatalf("socket should be removed on shutdown, stat err=%v", err)
	}

	logData, err := os.ReadFile(filepath.Join(env.cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read serve log: %v", err)
	}
	requireContains(t, string(logData), "kodi client ready")
	requireContains(t, string(logData), "page_size=6")
}
