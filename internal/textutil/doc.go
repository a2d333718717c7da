// Package textutil normalizes free text picked up from pages or typed by hand
// and derives the lookup candidates used against the media library.
//
// Normalization folds typographic dashes, quotes and ellipses to their ASCII
// forms and collapses whitespace, so text copied from rich pages matches the
// plain titles stored by the media server. SplitTitleArtist understands the
// common "Title - Artist" convention and UniqNonEmpty builds ordered,
// case-insensitively de-duplicated candidate lists.
package textutil
