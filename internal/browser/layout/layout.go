// File: internal/browser/layout/layout.go
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/Pablo96/robinson/internal/browser/style"
	"github.com/Pablo96/robinson/internal/observability"
	"go.uber.org/zap"
)

// ErrInvalidViewport is returned when the viewport has no positive area.
var ErrInvalidViewport = errors.New("viewport must have a positive width and height")

// LayoutTree builds the box tree for a style tree and resolves its geometry
// inside the viewport. A nil style tree (a hidden root) yields a nil box.
func LayoutTree(root *style.StyledNode, viewport Dimensions) (*LayoutBox, error) {
	vp := viewport.Content
	if !validExtent(vp.Width) || !validExtent(vp.Height) {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidViewport, vp.Width, vp.Height)
	}
	if root == nil {
		return nil, nil
	}

	box := buildLayoutTree(root)
	if box.BoxType == InlineBox {
		box.layoutInline(vp)
		box.translate(vp.X, vp.Y)
	} else {
		box.layoutBlock(vp, vp.Y)
	}
	box.detach()

	observability.GetLogger().Debug("Layout complete",
		zap.Int("boxes", box.Count()),
		zap.Float64("viewport_width", vp.Width),
		zap.Float64("viewport_height", vp.Height))
	return box, nil
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// buildLayoutTree generates one box per styled node. When a block box has
// both block-level and inline children, each run of inline children is
// wrapped in an anonymous block.
func buildLayoutTree(sn *style.StyledNode) *LayoutBox {
	boxType := InlineBox
	if sn.Display() == style.DisplayBlock {
		boxType = BlockBox
	}
	box := newBox(boxType, sn)
	box.resolveColors()

	mixed := boxType == BlockBox && hasMixedChildren(sn.Children)
	for _, c := range sn.Children {
		if c.Display() == style.DisplayNone {
			continue
		}
		child := buildLayoutTree(c)
		if mixed && child.BoxType == InlineBox {
			container := box.inlineContainer()
			container.Children = append(container.Children, child)
			continue
		}
		box.Children = append(box.Children, child)
	}
	return box
}

func hasMixedChildren(children []*style.StyledNode) bool {
	var block, inline bool
	for _, c := range children {
		switch c.Display() {
		case style.DisplayBlock:
			block = true
		case style.DisplayInline:
			inline = true
		}
	}
	return block && inline
}

// inlineContainer returns the trailing anonymous block, creating it when
// the last child is not one.
func (b *LayoutBox) inlineContainer() *LayoutBox {
	if n := len(b.Children); n > 0 && b.Children[n-1].BoxType == AnonymousBlockBox {
		return b.Children[n-1]
	}
	anon := newBox(AnonymousBlockBox, nil)
	b.Children = append(b.Children, anon)
	return anon
}

// layoutBlock lays out a block-level box in the content rect cb with the
// top of its margin box at y. A NaN cb.Height marks an indefinite height.
func (b *LayoutBox) layoutBlock(cb Rect, y float64) {
	b.calculateBlockWidth(cb)
	b.resolveVerticalEdges(cb)

	d := &b.Dimensions
	d.Content.X = cb.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = y + d.Margin.Top + d.Border.Top + d.Padding.Top
	d.Content.Height = b.specifiedHeight(cb)

	used := b.layoutBlockChildren()
	if isAuto(d.Content.Height) {
		d.Content.Height = used
	}
}

// calculateBlockWidth resolves width and the horizontal edges so that the
// margin box exactly fills the containing block.
func (b *LayoutBox) calculateBlockWidth(cb Rect) {
	sn := b.styled
	d := &b.Dimensions

	width := auto
	if sn != nil {
		width = length(sn, "width", cb.Width)
	}
	if !isAuto(width) {
		width = nonNegative(width)
	}
	marginLeft := length(sn, "margin-left", cb.Width)
	marginRight := length(sn, "margin-right", cb.Width)
	d.Border.Left = borderWidth(sn, "left")
	d.Border.Right = borderWidth(sn, "right")
	d.Padding.Left = nonNegative(edge(sn, "padding-left", cb.Width))
	d.Padding.Right = nonNegative(edge(sn, "padding-right", cb.Width))

	total := zeroIfAuto(marginLeft) + zeroIfAuto(marginRight) +
		d.Border.Horizontal() + d.Padding.Horizontal() + zeroIfAuto(width)

	// Too wide for the containing block: auto margins collapse to 0.
	if !isAuto(width) && total > cb.Width {
		if isAuto(marginLeft) {
			marginLeft = 0
		}
		if isAuto(marginRight) {
			marginRight = 0
		}
	}

	underflow := cb.Width - total
	switch {
	case isAuto(width):
		if isAuto(marginLeft) {
			marginLeft = 0
		}
		if isAuto(marginRight) {
			marginRight = 0
		}
		if underflow >= 0 {
			width = underflow
		} else {
			width = 0
			marginRight += underflow
		}
	case isAuto(marginLeft) && isAuto(marginRight):
		marginLeft = underflow / 2
		marginRight = underflow / 2
	case isAuto(marginLeft):
		marginLeft = underflow
	case isAuto(marginRight):
		marginRight = underflow
	default:
		// Over-constrained.
		marginRight += underflow
	}

	d.Content.Width = width
	d.Margin.Left = marginLeft
	d.Margin.Right = marginRight
}

// layoutBlockChildren lays out the children and returns the height they
// use. Block-level children stack on a cursor; inline children flow in lines.
func (b *LayoutBox) layoutBlockChildren() float64 {
	content := b.Dimensions.Content
	if len(b.Children) == 0 {
		return 0
	}
	if !b.Children[0].BoxType.IsBlockLevel() {
		_, h := placeLines(b.Children, content, content.Width)
		return h
	}

	cursor := content.Y
	for _, child := range b.Children {
		child.layoutBlock(content, cursor)
		cursor += child.Dimensions.MarginBox().Height
	}
	return cursor - content.Y
}

// layoutInline lays out an inline box with its margin box at the origin.
// Callers move it into place with translate.
func (b *LayoutBox) layoutInline(cb Rect) {
	sn := b.styled
	d := &b.Dimensions
	d.Margin.Left = edge(sn, "margin-left", cb.Width)
	d.Margin.Right = edge(sn, "margin-right", cb.Width)
	d.Border.Left = borderWidth(sn, "left")
	d.Border.Right = borderWidth(sn, "right")
	d.Padding.Left = nonNegative(edge(sn, "padding-left", cb.Width))
	d.Padding.Right = nonNegative(edge(sn, "padding-right", cb.Width))
	b.resolveVerticalEdges(cb)

	d.Content.X = d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = d.Margin.Top + d.Border.Top + d.Padding.Top

	width := auto
	if sn != nil && sn.Node != nil && sn.Node.IsElement() {
		width = length(sn, "width", cb.Width)
	}
	if !isAuto(width) {
		width = nonNegative(width)
	}
	height := b.specifiedHeight(cb)

	area := Rect{X: d.Content.X, Y: d.Content.Y, Width: cb.Width, Height: height}
	limit := math.Inf(1)
	if !isAuto(width) {
		area.Width = width
		limit = width
	}
	usedWidth, usedHeight := placeLines(b.Children, area, limit)
	if isAuto(width) {
		width = usedWidth
	}
	if isAuto(height) {
		height = usedHeight
	}
	d.Content.Width = width
	d.Content.Height = height
}

// placeLines flows boxes left to right from the top-left of area, starting
// a new line when a box would cross maxWidth. The area width is the
// percentage basis for the boxes. It returns the widest line and the total
// height of all lines.
func placeLines(boxes []*LayoutBox, area Rect, maxWidth float64) (width, height float64) {
	var x, lineHeight float64
	measureIn := Rect{Width: area.Width, Height: area.Height}
	for _, box := range boxes {
		if box.BoxType.IsBlockLevel() {
			box.layoutBlock(measureIn, 0)
		} else {
			box.layoutInline(measureIn)
		}
		m := box.Dimensions.MarginBox()
		if x > 0 && x+m.Width > maxWidth {
			height += lineHeight
			x, lineHeight = 0, 0
		}
		box.translate(area.X+x, area.Y+height)
		x += m.Width
		lineHeight = math.Max(lineHeight, m.Height)
		width = math.Max(width, x)
	}
	return width, height + lineHeight
}
