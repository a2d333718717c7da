package page

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Rect is a box in grid cells. Right and bottom edges are exclusive.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Document is a laid-out HTML page.
type Document struct {
	root     *html.Node
	boxes    map[*html.Node]Rect
	elements []*html.Node // pre-order
	lines    []string
	width    int
}

var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Head:     true,
	atom.Template: true,
	atom.Noscript: true,
}

var blocks = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Div: true, atom.P: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
	atom.Main: true, atom.Nav: true, atom.Aside: true, atom.Address: true,
	atom.Blockquote: true, atom.Pre: true, atom.Figure: true, atom.Figcaption: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Tr: true,
	atom.Form: true, atom.Fieldset: true, atom.Hr: true, atom.Details: true, atom.Summary: true,
}

// Parse reads and lays out an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &Document{root: root, boxes: make(map[*html.Node]Rect)}
	l := &layout{doc: doc}
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		l.walk(child)
	}
	l.newline()
	return doc, nil
}

// ElementAt returns the deepest element whose box contains the cell.
func (d *Document) ElementAt(x, y int) (*html.Node, bool) {
	var hit *html.Node
	for _, n := range d.elements {
		if d.boxes[n].contains(x, y) {
			hit = n
		}
	}
	return hit, hit != nil
}

// Bounds returns the element's box; false for nodes not in this document.
func (d *Document) Bounds(n *html.Node) (Rect, bool) {
	r, ok := d.boxes[n]
	return r, ok
}

// Text returns the element's rendered text with whitespace collapsed.
func (d *Document) Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var words []string
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			words = append(words, strings.Fields(node.Data)...)
			return
		case html.ElementNode:
			if skipped[node.DataAtom] {
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return strings.Join(words, " ")
}

// Parent returns the enclosing element.
func (d *Document) Parent(n *html.Node) (*html.Node, bool) {
	if n == nil || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return nil, false
	}
	return n.Parent, true
}

// Size returns the grid size in columns and rows.
func (d *Document) Size() (width, height int) {
	return d.width, len(d.lines)
}

// Lines returns the rendered rows.
func (d *Document) Lines() []string {
	return append([]string(nil), d.lines...)
}

// Describe names an element for display, e.g. "a#home.nav".
func Describe(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(n.Data)
	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			b.WriteString("#" + attr.Val)
		case "class":
			for _, class := range strings.Fields(attr.Val) {
				b.WriteString("." + class)
			}
		}
	}
	return b.String()
}

type extent struct {
	top, left, bottom, right int
	ok                       bool
}

func (e *extent) add(o extent) {
	if !o.ok {
		return
	}
	if !e.ok {
		*e = o
		return
	}
	e.top = min(e.top, o.top)
	e.left = min(e.left, o.left)
	e.bottom = max(e.bottom, o.bottom)
	e.right = max(e.right, o.right)
}

type layout struct {
	doc          *Document
	line         strings.Builder
	col          int
	pendingSpace bool
}

func (l *layout) row() int {
	return len(l.doc.lines)
}

func (l *layout) newline() {
	if l.col == 0 {
		return
	}
	l.doc.lines = append(l.doc.lines, l.line.String())
	l.doc.width = max(l.doc.width, l.col)
	l.line.Reset()
	l.col = 0
	l.pendingSpace = false
}

func (l *layout) walk(n *html.Node) extent {
	switch n.Type {
	case html.TextNode:
		return l.text(n.Data)
	case html.ElementNode:
	case html.DocumentNode:
	default:
		return extent{}
	}

	if n.Type == html.ElementNode {
		if skipped[n.DataAtom] {
			return extent{}
		}
		if n.DataAtom == atom.Br {
			l.newline()
			return extent{}
		}
	}

	block := n.Type == html.ElementNode && blocks[n.DataAtom]
	if n.Type == html.ElementNode {
		l.doc.elements = append(l.doc.elements, n)
	}
	if block {
		l.newline()
	}

	var ext extent
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		ext.add(l.walk(child))
	}

	if block {
		l.newline()
		if ext.ok {
			ext.left = 0
		}
	}
	if n.Type == html.ElementNode {
		l.doc.boxes[n] = ext.rect()
	}
	return ext
}

func (e extent) rect() Rect {
	if !e.ok {
		return Rect{}
	}
	return Rect{X: e.left, Y: e.top, Width: e.right - e.left, Height: e.bottom - e.top}
}

func (l *layout) text(data string) extent {
	words := strings.Fields(data)
	if len(words) == 0 {
		if data != "" {
			l.pendingSpace = true
		}
		return extent{}
	}
	first, _ := utf8.DecodeRuneInString(data)
	if unicode.IsSpace(first) {
		l.pendingSpace = true
	}
	if l.col > 0 && l.pendingSpace {
		l.line.WriteByte(' ')
		l.col++
	}

	joined := strings.Join(words, " ")
	start := l.col
	l.line.WriteString(joined)
	l.col += utf8.RuneCountInString(joined)

	last, _ := utf8.DecodeLastRuneInString(data)
	l.pendingSpace = unicode.IsSpace(last)

	row := l.row()
	return extent{top: row, left: start, bottom: row + 1, right: l.col, ok: true}
}
