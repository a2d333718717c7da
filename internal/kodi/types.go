package kodi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ArtistList holds a song's artists. Kodi reports them as an array, older
// versions and some scrapers as a single string.
type ArtistList []string

// UnmarshalJSON accepts a string or an array of strings. Anything else
// decodes to an empty list.
func (a *ArtistList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '"':
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		if single == "" {
			*a = nil
		} else {
			*a = ArtistList{single}
		}
		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		list := make(ArtistList, 0, len(raw))
		for _, entry := range raw {
			var name string
			if json.Unmarshal(entry, &name) == nil && name != "" {
				list = append(list, name)
			}
		}
		*a = list
		return nil
	default:
		*a = nil
		return nil
	}
}

// String joins the artists with ", ".
func (a ArtistList) String() string {
	return strings.Join(a, ", ")
}

// Song is one AudioLibrary.GetSongs entry.
type Song struct {
	SongID int        `json:"songid"`
	Title  string     `json:"title"`
	Artist ArtistList `json:"artist"`
	Album  string     `json:"album"`
}

// Movie is one VideoLibrary.GetMovies entry.
type Movie struct {
	MovieID int    `json:"movieid"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	File    string `json:"file"`
}

// SongPage is one page of song search results. Total counts every match on the
// server, not only the returned songs.
type SongPage struct {
	Total int
	Songs []Song
}

// MoviePage is one page of movie search results.
type MoviePage struct {
	Total  int
	Movies []Movie
}

type limitsResult struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Total int `json:"total"`
}

type songsResult struct {
	Limits limitsResult `json:"limits"`
	Songs  []Song       `json:"songs"`
}

type moviesResult struct {
	Limits limitsResult `json:"limits"`
	Movies []Movie      `json:"movies"`
}

type titleFilter struct {
	Operator string `json:"operator"`
	Field    string `json:"field"`
	Value    string `json:"value"`
}

type limits struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type searchParams struct {
	Filter     titleFilter `json:"filter"`
	Properties []string    `json:"properties"`
	Limits     limits      `json:"limits"`
}
