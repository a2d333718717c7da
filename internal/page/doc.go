// Package page parses an HTML document and lays its text out on a character
// grid so elements can be hit-tested by row and column.
//
// The layout is intentionally simple: every block element starts a new row
// for its inline content, inline elements cover the columns of their own text,
// and elements without rendered text have no area.
package page
