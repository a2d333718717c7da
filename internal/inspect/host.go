package inspect

import (
	"context"

	"mediumcheck/internal/resolver"
)

// Point is a position in host coordinates.
type Point struct {
	X int
	Y int
}

// Rect is an element's bounding box.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Size is the viewport size.
type Size struct {
	Width  int
	Height int
}

// Node is an opaque element handle supplied by the host. Handles are compared
// with == and must therefore be comparable values, typically pointers.
type Node any

// State selects the overlay color.
type State int

const (
	StateLoading State = iota // yellow
	StateFound                // green
	StateMissing              // red, also used for errors
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFound:
		return "found"
	default:
		return "missing"
	}
}

// Host is the surface the controller inspects and draws on.
type Host interface {
	// NodeAt returns the element under p.
	NodeAt(p Point) (Node, bool)
	// Bounds returns the current box of n; false when n is no longer valid.
	Bounds(n Node) (Rect, bool)
	// Text returns the rendered text of n.
	Text(n Node) string
	Parent(n Node) (Node, bool)
	Viewport() Size
	// Prompt asks the user for free text. ok is false when cancelled.
	Prompt(message string) (text string, ok bool)
	NewOverlay() Overlay
	NewTooltip() Tooltip
}

// Overlay highlights the inspected element and carries the badge.
type Overlay interface {
	Place(r Rect)
	Hide()
	SetState(s State)
	SetBadge(text string, s State)
	Remove()
}

// Tooltip shows lookup details near the pointer.
type Tooltip interface {
	Show(text string, at Point)
	Move(at Point)
	Hide()
	Remove()
}

// Checker performs one lookup. Implementations never return errors; failures
// come back as a status with OK false.
type Checker interface {
	Check(ctx context.Context, text string) resolver.MediumStatus
}

var _ Checker = (*resolver.Resolver)(nil)
