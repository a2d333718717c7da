package testsupport_test

import (
	"context"
	"net/http"
	"testing"

	"mediumcheck/internal/kodi"
	"mediumcheck/internal/testsupport"
)

func TestFakeKodiContainsMatching(t *testing.T) {
	fk := testsupport.NewFakeKodi(t,
		[]testsupport.FakeSong{
			{Title: "Bohemian Rhapsody", Artist: []string{"Queen"}},
			{Title: "Rhapsody in Blue", Artist: []string{"Gershwin"}},
			{Title: "Heroes", Artist: []string{"David Bowie"}},
		},
		[]testsupport.FakeMovie{{Title: "Inception", Year: 2010}},
	)
	client, err := kodi.New(kodi.Options{URL: fk.URL(), PageSize: 1})
	if err != nil {
		t.Fatalf("kodi.New: %v", err)
	}

	page, err := client.SearchSongs(context.Background(), "rhapsody")
	if err != nil {
		t.Fatalf("SearchSongs: %v", err)
	}
	if page.Total != 2 || len(page.Songs) != 1 || page.Songs[0].Title != "Bohemian Rhapsody" {
		t.Fatalf("unexpected page: %+v", page)
	}

	movies, err := client.SearchMovies(context.Background(), "INCEP")
	if err != nil {
		t.Fatalf("SearchMovies: %v", err)
	}
	if movies.Total != 1 || movies.Movies[0].Year != 2010 {
		t.Fatalf("unexpected movies: %+v", movies)
	}

	queries := fk.Queries()
	if len(queries) != 2 || queries[0].Method != "AudioLibrary.GetSongs" || queries[1].Title != "INCEP" {
		t.Fatalf("queries = %+v", queries)
	}
}

func TestFakeKodiFailMethod(t *testing.T) {
	fk := testsupport.NewFakeKodi(t, nil, nil)
	fk.FailMethod("VideoLibrary.GetMovies", http.StatusUnauthorized)
	client, err := kodi.New(kodi.Options{URL: fk.URL()})
	if err != nil {
		t.Fatalf("kodi.New: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	_, err = client.SearchMovies(context.Background(), "x")
	httpErr, ok := err.(*kodi.HTTPError)
	if !ok || httpErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
