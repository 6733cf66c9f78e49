// Package component defines the drawable tree a layout produces.
//
// A [Tree] is a fixed-size canvas with a background and an ordered list of
// nodes drawn front to back in slice order. Trees are plain values: they are
// built per request, handed to the composer, and dropped.
//
// Text nodes come in one flavour. Setting [Text.Wrap] turns a plain label
// into a wrapping one: its content is first truncated to Wrap.MaxLength runes
// and then broken at whitespace so no line is wider than the space between
// the node's X and the right edge of the canvas.
package component

import "image/color"

// Align is horizontal text alignment relative to a node's X.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Node is a drawable element.
type Node interface {
	node()
}

// Text draws a label. Y is the baseline of the first line.
type Text struct {
	X, Y    float64
	Size    float64
	Color   color.RGBA
	Bold    bool
	Align   Align
	Font    string
	Content string
	Wrap    *Wrap // nil draws Content on a single line as-is
}

// Wrap is the truncate-then-wrap policy of a text node.
type Wrap struct {
	// MaxLength caps the content in runes before wrapping. Zero or negative
	// means unbounded.
	MaxLength int
	// MaxLines caps the wrapped lines. Overflowing content ends the last
	// kept line with an ellipsis. Zero or negative means unbounded.
	MaxLines int
}

// Image draws an embedded image scaled into the box. Empty or undecodable
// data draws a rounded placeholder in Placeholder instead.
type Image struct {
	X, Y, W, H  float64
	Data        []byte
	Placeholder color.RGBA
}

// Rect fills a rounded rectangle.
type Rect struct {
	X, Y, W, H float64
	Radius     float64
	Color      color.RGBA
}

func (Text) node()  {}
func (Image) node() {}
func (Rect) node()  {}

// Background fills the canvas. A zero To draws a solid From; otherwise the
// canvas gets a left-to-right gradient.
type Background struct {
	From, To color.RGBA
	Radius   float64
}

// Gradient reports whether the background is a gradient.
func (b Background) Gradient() bool {
	return b.To != (color.RGBA{})
}

// Tree is a complete banner ready for composition.
type Tree struct {
	Width, Height int
	Background    Background
	Nodes         []Node
}

// New creates an empty tree of the given size.
func New(width, height int, bg Background) *Tree {
	return &Tree{Width: width, Height: height, Background: bg}
}

// Add appends nodes in draw order.
func (t *Tree) Add(nodes ...Node) *Tree {
	t.Nodes = append(t.Nodes, nodes...)
	return t
}

// Texts returns the text nodes in draw order.
func (t *Tree) Texts() []Text {
	var out []Text
	for _, n := range t.Nodes {
		if txt, ok := n.(Text); ok {
			out = append(out, txt)
		}
	}
	return out
}
