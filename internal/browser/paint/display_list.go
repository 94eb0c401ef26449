// File: internal/browser/paint/display_list.go
package paint

import (
	"github.com/Pablo96/robinson/internal/browser/layout"
	"github.com/Pablo96/robinson/internal/browser/parser"
)

// DrawCommand is one entry of a display list. The set of commands is
// closed: backends switch over the concrete types.
type DrawCommand interface {
	drawCommand()
}

// SolidRect fills a rectangle with an opaque color.
type SolidRect struct {
	Rect  layout.Rect  `json:"rect"`
	Color parser.Color `json:"color"`
}

func (SolidRect) drawCommand() {}

// DisplayList is an ordered sequence of draw commands. Later commands are
// drawn over earlier ones.
type DisplayList []DrawCommand

// BuildDisplayList walks the layout tree in pre-order. Each box emits its
// background and then its four border edges before any of its children.
func BuildDisplayList(root *layout.LayoutBox) DisplayList {
	list := make(DisplayList, 0)
	root.Walk(func(box *layout.LayoutBox) {
		list = renderBackground(list, box)
		list = renderBorders(list, box)
	})
	return list
}

func renderBackground(list DisplayList, box *layout.LayoutBox) DisplayList {
	if box.Background == nil || box.Background.A == 0 {
		return list
	}
	return appendRect(list, box.Dimensions.BorderBox(), *box.Background)
}

func renderBorders(list DisplayList, box *layout.LayoutBox) DisplayList {
	if box.BorderColor == nil || box.BorderColor.A == 0 {
		return list
	}
	color := *box.BorderColor
	d := box.Dimensions
	bb := d.BorderBox()

	// Left
	list = appendRect(list, layout.Rect{X: bb.X, Y: bb.Y, Width: d.Border.Left, Height: bb.Height}, color)
	// Right
	list = appendRect(list, layout.Rect{
		X: bb.X + bb.Width - d.Border.Right, Y: bb.Y, Width: d.Border.Right, Height: bb.Height,
	}, color)
	// Top
	list = appendRect(list, layout.Rect{X: bb.X, Y: bb.Y, Width: bb.Width, Height: d.Border.Top}, color)
	// Bottom
	list = appendRect(list, layout.Rect{
		X: bb.X, Y: bb.Y + bb.Height - d.Border.Bottom, Width: bb.Width, Height: d.Border.Bottom,
	}, color)
	return list
}

// appendRect drops rectangles that cover no area.
func appendRect(list DisplayList, r layout.Rect, c parser.Color) DisplayList {
	if r.Width <= 0 || r.Height <= 0 {
		return list
	}
	return append(list, SolidRect{Rect: r, Color: c})
}
