// File: internal/browser/layout/box.go
package layout

import (
	"fmt"
	"math"

	"github.com/Pablo96/robinson/internal/browser/parser"
	"github.com/Pablo96/robinson/internal/browser/style"
)

// Rect is an axis-aligned rectangle in layout space (origin top-left, y down).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExpandedBy returns a new rectangle expanded by the edge sizes.
func (r Rect) ExpandedBy(e Edges) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// Edges holds per-side sizes of padding, border or margin.
type Edges struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Horizontal is Left + Right.
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical is Top + Bottom.
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// Dimensions defines the geometry of a layout box.
type Dimensions struct {
	// Content area position and size relative to the viewport origin.
	Content Rect  `json:"content"`
	Padding Edges `json:"padding"`
	Border  Edges `json:"border"`
	Margin  Edges `json:"margin"`
}

// MarginBox returns the rectangle enclosing the margin area.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BorderBox returns the rectangle enclosing the border area.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// PaddingBox returns the rectangle enclosing the padding area.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// Viewport builds the initial containing block at the origin.
func Viewport(width, height float64) Dimensions {
	return Dimensions{Content: Rect{Width: width, Height: height}}
}

// BoxType discriminates the layout box variant.
type BoxType int

const (
	BlockBox BoxType = iota
	InlineBox
	AnonymousBlockBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBlockBox:
		return "anonymous"
	default:
		return fmt.Sprintf("BoxType(%d)", int(t))
	}
}

// MarshalText encodes the box type by name.
func (t BoxType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsBlockLevel reports whether the box stacks vertically in its parent.
func (t BoxType) IsBlockLevel() bool {
	return t == BlockBox || t == AnonymousBlockBox
}

// LayoutBox is a node of the layout tree. Once LayoutTree returns, a box
// carries everything painting needs and holds no reference to the style or
// document trees.
type LayoutBox struct {
	BoxType    BoxType    `json:"type"`
	Label      string     `json:"label,omitempty"`
	Dimensions Dimensions `json:"dimensions"`

	// Background and BorderColor are nil when nothing should be painted.
	Background  *parser.Color `json:"background,omitempty"`
	BorderColor *parser.Color `json:"border_color,omitempty"`

	Children []*LayoutBox `json:"children,omitempty"`

	styled *style.StyledNode
}

func newBox(t BoxType, sn *style.StyledNode) *LayoutBox {
	b := &LayoutBox{BoxType: t, styled: sn}
	if sn != nil && sn.Node != nil {
		b.Label = sn.Node.String()
	}
	return b
}

// Count returns the number of boxes in the subtree.
func (b *LayoutBox) Count() int {
	if b == nil {
		return 0
	}
	n := 1
	for _, c := range b.Children {
		n += c.Count()
	}
	return n
}

// Walk visits boxes in pre-order.
func (b *LayoutBox) Walk(fn func(*LayoutBox)) {
	if b == nil {
		return
	}
	fn(b)
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// Find returns the first box in pre-order with the given label.
func (b *LayoutBox) Find(label string) *LayoutBox {
	var found *LayoutBox
	b.Walk(func(box *LayoutBox) {
		if found == nil && box.Label == label {
			found = box
		}
	})
	return found
}

func (b *LayoutBox) translate(dx, dy float64) {
	b.Dimensions.Content.X += dx
	b.Dimensions.Content.Y += dy
	for _, c := range b.Children {
		c.translate(dx, dy)
	}
}

// detach drops the build-time style references.
func (b *LayoutBox) detach() {
	b.styled = nil
	for _, c := range b.Children {
		c.detach()
	}
}

// isAuto distinguishes unresolved (auto) sizes during layout.
func isAuto(v float64) bool { return math.IsNaN(v) }

var auto = math.NaN()
