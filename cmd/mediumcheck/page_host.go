package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/net/html"

	"mediumcheck/internal/inspect"
	"mediumcheck/internal/page"
)

const (
	minViewportWidth  = 80
	minViewportHeight = 24
)

// pageHost presents a laid-out HTML document to the inspection controller and
// draws the overlay and tooltip as lines on a writer.
type pageHost struct {
	doc      *page.Document
	out      io.Writer
	colorize bool

	mu      sync.Mutex
	answers []string
}

var _ inspect.Host = (*pageHost)(nil)

func newPageHost(doc *page.Document, out io.Writer, colorize bool) *pageHost {
	return &pageHost{doc: doc, out: &syncWriter{w: out}, colorize: colorize}
}

// queueAnswer supplies the text returned by the next Prompt.
func (h *pageHost) queueAnswer(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.answers = append(h.answers, text)
}

func (h *pageHost) NodeAt(p inspect.Point) (inspect.Node, bool) {
	n, ok := h.doc.ElementAt(p.X, p.Y)
	if !ok {
		return nil, false
	}
	return n, true
}

func (h *pageHost) Bounds(n inspect.Node) (inspect.Rect, bool) {
	el, ok := n.(*html.Node)
	if !ok {
		return inspect.Rect{}, false
	}
	r, ok := h.doc.Bounds(el)
	if !ok {
		return inspect.Rect{}, false
	}
	return inspect.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}, true
}

func (h *pageHost) Text(n inspect.Node) string {
	el, ok := n.(*html.Node)
	if !ok {
		return ""
	}
	return h.doc.Text(el)
}

func (h *pageHost) Parent(n inspect.Node) (inspect.Node, bool) {
	el, ok := n.(*html.Node)
	if !ok {
		return nil, false
	}
	parent, ok := h.doc.Parent(el)
	if !ok {
		return nil, false
	}
	return parent, true
}

func (h *pageHost) Viewport() inspect.Size {
	w, ht := h.doc.Size()
	return inspect.Size{Width: max(w, minViewportWidth), Height: max(ht, minViewportHeight)}
}

func (h *pageHost) Prompt(message string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.answers) == 0 {
		h.printf("prompt", inspect.StateLoading, "%s (cancelled)", message)
		return "", false
	}
	answer := h.answers[0]
	h.answers = h.answers[1:]
	h.printf("prompt", inspect.StateLoading, "%s %s", message, answer)
	return answer, true
}

func (h *pageHost) NewOverlay() inspect.Overlay {
	return &consoleOverlay{host: h}
}

func (h *pageHost) NewTooltip() inspect.Tooltip {
	return &consoleTooltip{host: h}
}

func (h *pageHost) printf(kind string, state inspect.State, format string, args ...any) {
	h.emit(kind, stateColors(state), fmt.Sprintf(format, args...))
}

// emit writes one event; continuation lines of body are indented under it.
func (h *pageHost) emit(kind string, colors text.Colors, body string) {
	lines := strings.Split(body, "\n")
	var b strings.Builder
	for i, line := range lines {
		label := ""
		if i == 0 {
			label = kind
		}
		entry := fmt.Sprintf("%-8s %s", label, line)
		if h.colorize && colors != nil {
			entry = colors.Sprint(entry)
		}
		b.WriteString(strings.TrimRight(entry, " "))
		b.WriteString("\n")
	}
	_, _ = io.WriteString(h.out, b.String())
}

func stateColors(state inspect.State) text.Colors {
	switch state {
	case inspect.StateFound:
		return text.Colors{text.FgGreen}
	case inspect.StateMissing:
		return text.Colors{text.FgRed}
	default:
		return text.Colors{text.FgYellow}
	}
}

type consoleOverlay struct {
	host    *pageHost
	state   inspect.State
	visible bool
}

func (o *consoleOverlay) Place(r inspect.Rect) {
	o.visible = true
	o.host.printf("overlay", o.state, "at %d,%d size %dx%d", r.X, r.Y, r.Width, r.Height)
}

func (o *consoleOverlay) Hide() {
	if !o.visible {
		return
	}
	o.visible = false
	o.host.printf("overlay", o.state, "hidden")
}

func (o *consoleOverlay) SetState(s inspect.State) {
	o.state = s
}

func (o *consoleOverlay) SetBadge(label string, s inspect.State) {
	o.host.printf("badge", s, "%s", label)
}

func (o *consoleOverlay) Remove() {
	o.host.printf("overlay", o.state, "removed")
}

type consoleTooltip struct {
	host *pageHost
}

func (t *consoleTooltip) Show(body string, at inspect.Point) {
	t.host.emit("tooltip", nil, fmt.Sprintf("at %d,%d: %s", at.X, at.Y, body))
}

func (t *consoleTooltip) Move(at inspect.Point) {
	t.host.emit("tooltip", nil, fmt.Sprintf("moved to %d,%d", at.X, at.Y))
}

func (t *consoleTooltip) Hide() {
	t.host.emit("tooltip", nil, "hidden")
}

func (t *consoleTooltip) Remove() {
	t.host.emit("tooltip", nil, "removed")
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
