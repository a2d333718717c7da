package resolver

import (
	"strconv"
	"strings"

	"mediumcheck/internal/kodi"
)

const itemSeparator = " — "

// FormatSong renders "♪ title — artist — album", omitting empty parts.
func FormatSong(song kodi.Song) string {
	var b strings.Builder
	b.WriteString("♪ ")
	b.WriteString(song.Title)
	if artist := song.Artist.String(); artist != "" {
		b.WriteString(itemSeparator)
		b.WriteString(artist)
	}
	if song.Album != "" {
		b.WriteString(itemSeparator)
		b.WriteString(song.Album)
	}
	return strings.TrimSpace(b.String())
}

// FormatMovie renders "🎬 title (year) — file", omitting empty parts.
func FormatMovie(movie kodi.Movie) string {
	var b strings.Builder
	b.WriteString("🎬 ")
	b.WriteString(movie.Title)
	if movie.Year != 0 {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(movie.Year))
		b.WriteString(")")
	}
	if movie.File != "" {
		b.WriteString(itemSeparator)
		b.WriteString(movie.File)
	}
	return strings.TrimSpace(b.String())
}
