// Package inspect drives hover inspection: it follows the pointer over a host
// surface, extracts text from the element underneath, debounces lookups, and
// renders the answer as a colored overlay, a badge and a tooltip.
//
// All mutable state is owned by the goroutine running Controller.Run. Pointer
// and key events, timer expiries and lookup completions are posted to that
// loop, so no locks guard the state. Lookups are never aborted; a monotonic
// sequence number decides whether a completed lookup is still wanted.
package inspect
