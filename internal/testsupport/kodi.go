package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeSong is a library song served by FakeKodi.
type FakeSong struct {
	Title  string
	Artist []string
	Album  string
}

// FakeMovie is a library movie served by FakeKodi.
type FakeMovie struct {
	Title string
	Year  int
	File  string
}

// FakeKodi is an in-process Kodi JSON-RPC endpoint answering library title
// searches with case-insensitive "contains" matching.
type FakeKodi struct {
	Server *httptest.Server

	mu      sync.Mutex
	songs   []FakeSong
	movies  []FakeMovie
	queries []FakeQuery
	fail    map[string]int
}

// FakeQuery records one search received by FakeKodi.
type FakeQuery struct {
	Method string
	Title  string
}

// NewFakeKodi starts a fake endpoint and registers its shutdown.
func NewFakeKodi(t testing.TB, songs []FakeSong, movies []FakeMovie) *FakeKodi {
	t.Helper()
	fk := &FakeKodi{songs: songs, movies: movies, fail: make(map[string]int)}
	fk.Server = httptest.NewServer(http.HandlerFunc(fk.serve))
	t.Cleanup(fk.Server.Close)
	return fk
}

// URL returns the JSON-RPC endpoint URL.
func (f *FakeKodi) URL() string {
	return f.Server.URL + "/jsonrpc"
}

// FailMethod makes every call to method answer with the given HTTP status.
func (f *FakeKodi) FailMethod(method string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = status
}

// Queries returns the searches received so far.
func (f *FakeKodi) Queries() []FakeQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]FakeQuery(nil), f.queries...)
}

type fakeRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params struct {
		Filter struct {
			Value string `json:"value"`
		} `json:"filter"`
		Limits struct {
			End int `json:"end"`
		} `json:"limits"`
	} `json:"params"`
}

func (f *FakeKodi) serve(w http.ResponseWriter, r *http.Request) {
	var req fakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	status := f.fail[req.Method]
	if req.Method != "JSONRPC.Ping" {
		f.queries = append(f.queries, FakeQuery{Method: req.Method, Title: req.Params.Filter.Value})
	}
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, "fake kodi failure", status)
		return
	}

	var result any
	switch req.Method {
	case "JSONRPC.Ping":
		result = "pong"
	case "AudioLibrary.GetSongs":
		result = f.searchSongs(req.Params.Filter.Value, req.Params.Limits.End)
	case "VideoLibrary.GetMovies":
		result = f.searchMovies(req.Params.Filter.Value, req.Params.Limits.End)
	default:
		writeJSON(w, map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]any{"code": -32601, "message": "Method not found."},
		})
		return
	}
	writeJSON(w, map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
}

func (f *FakeKodi) searchSongs(title string, end int) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := make([]map[string]any, 0)
	for i, song := range f.songs {
		if contains(song.Title, title) {
			matches = append(matches, map[string]any{
				"songid": i + 1,
				"title":  song.Title,
				"artist": song.Artist,
				"album":  song.Album,
			})
		}
	}
	total := len(matches)
	if end > 0 && len(matches) > end {
		matches = matches[:end]
	}
	return map[string]any{
		"limits": map[string]int{"start": 0, "end": len(matches), "total": total},
		"songs":  matches,
	}
}

func (f *FakeKodi) searchMovies(title string, end int) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := make([]map[string]any, 0)
	for i, movie := range f.movies {
		if contains(movie.Title, title) {
			matches = append(matches, map[string]any{
				"movieid": i + 1,
				"title":   movie.Title,
				"year":    movie.Year,
				"file":    movie.File,
			})
		}
	}
	total := len(matches)
	if end > 0 && len(matches) > end {
		matches = matches[:end]
	}
	return map[string]any{
		"limits": map[string]int{"start": 0, "end": len(matches), "total": total},
		"movies": matches,
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
