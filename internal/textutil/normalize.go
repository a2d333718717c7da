package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// TitleArtistSeparator splits "Title - Artist" style text.
const TitleArtistSeparator = " - "

// foldRune maps single-rune typographic variants to ASCII.
func foldRune(r rune) rune {
	switch r {
	case '–', '—', '−', '―':
		return '-'
	case '‘', '’':
		return '\''
	case '“', '”':
		return '"'
	case '\uFEFF':
		return ' '
	}
	return r
}

// expandEllipsis replaces U+2026 with three dots.
type expandEllipsis struct{ transform.NopResetter }

func (expandEllipsis) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])
		out := src[nSrc : nSrc+size]
		if r == '…' {
			out = []byte("...")
		}
		if nDst+len(out) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], out)
		nSrc += size
	}
	return nDst, nSrc, nil
}

// isSpace extends unicode.IsSpace with the byte order mark, which browsers
// treat as whitespace in text content.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Normalize folds dash, quote and ellipsis variants to ASCII, collapses runs
// of whitespace to a single space and trims the result. Normalize is
// idempotent.
func Normalize(input string) string {
	if input == "" {
		return ""
	}
	// Neither transformer reports errors.
	folded, _, _ := transform.String(transform.Chain(runes.Map(foldRune), expandEllipsis{}), input)
	return CollapseSpace(folded)
}

// CollapseSpace collapses whitespace runs to single spaces and trims, without
// any other folding.
func CollapseSpace(input string) string {
	return strings.Join(strings.FieldsFunc(input, isSpace), " ")
}

// Parsed holds normalized text and its title/artist split.
type Parsed struct {
	Raw    string
	Title  string
	Artist string
}

// SplitTitleArtist normalizes raw and splits it on the first " - ". Any further
// separators stay part of the artist. Without a separator Title equals Raw and
// Artist is empty.
func SplitTitleArtist(raw string) Parsed {
	s := Normalize(raw)
	parts := strings.Split(s, TitleArtistSeparator)
	if len(parts) >= 2 {
		return Parsed{
			Raw:    s,
			Title:  strings.TrimSpace(parts[0]),
			Artist: strings.TrimSpace(strings.Join(parts[1:], TitleArtistSeparator)),
		}
	}
	return Parsed{Raw: s, Title: s}
}

// UniqNonEmpty normalizes values, drops blanks, and removes case-insensitive
// duplicates while keeping first-seen order.
func UniqNonEmpty(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		v := Normalize(value)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Truncate returns at most limit runes of s, trimmed.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == limit {
			return strings.TrimSpace(s[:i])
		}
		count++
	}
	return s
}
