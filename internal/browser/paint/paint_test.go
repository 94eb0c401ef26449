// File: internal/browser/paint/paint_test.go
package paint

import (
	"image/color"
	"testing"

	"github.com/Pablo96/robinson/internal/browser/dom"
	"github.com/Pablo96/robinson/internal/browser/layout"
	"github.com/Pablo96/robinson/internal/browser/parser"
	"github.com/Pablo96/robinson/internal/browser/style"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = parser.Color{R: 255, A: 255}
	green = parser.Color{G: 255, A: 255}
	blue  = parser.Color{B: 255, A: 255}
)

func box(rect layout.Rect, bg, border *parser.Color, children ...*layout.LayoutBox) *layout.LayoutBox {
	return &layout.LayoutBox{
		BoxType:     layout.BlockBox,
		Dimensions:  layout.Dimensions{Content: rect},
		Background:  bg,
		BorderColor: border,
		Children:    children,
	}
}

func TestBuildDisplayListOrder(t *testing.T) {
	child := box(layout.Rect{X: 2, Y: 2, Width: 4, Height: 4}, &green, nil)
	root := box(layout.Rect{X: 1, Y: 1, Width: 8, Height: 8}, &red, &blue, child)
	root.Dimensions.Border = layout.Edges{Top: 1, Right: 1, Bottom: 1, Left: 1}

	want := DisplayList{
		SolidRect{Rect: layout.Rect{X: 0, Y: 0, Width: 10, Height: 10}, Color: red},
		SolidRect{Rect: layout.Rect{X: 0, Y: 0, Width: 1, Height: 10}, Color: blue},
		SolidRect{Rect: layout.Rect{X: 9, Y: 0, Width: 1, Height: 10}, Color: blue},
		SolidRect{Rect: layout.Rect{X: 0, Y: 0, Width: 10, Height: 1}, Color: blue},
		SolidRect{Rect: layout.Rect{X: 0, Y: 9, Width: 10, Height: 1}, Color: blue},
		SolidRect{Rect: layout.Rect{X: 2, Y: 2, Width: 4, Height: 4}, Color: green},
	}
	if diff := cmp.Diff(want, BuildDisplayList(root)); diff != "" {
		t.Errorf("display list mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDisplayListSkipsInvisible(t *testing.T) {
	faded := parser.Color{R: 9}
	tests := []struct {
		name string
		root *layout.LayoutBox
	}{
		{"nil tree", nil},
		{"no colors", box(layout.Rect{Width: 5, Height: 5}, nil, nil)},
		{"transparent background", box(layout.Rect{Width: 5, Height: 5}, &faded, nil)},
		{"border color without widths", box(layout.Rect{Width: 5, Height: 5}, nil, &blue)},
		{"empty background", box(layout.Rect{Width: 0, Height: 5}, &red, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, BuildDisplayList(tt.root))
		})
	}
}

func TestCanvasStartsZeroed(t *testing.T) {
	c, err := Rasterize(nil, 3, 2)
	require.NoError(t, err)
	assert.Len(t, c.Pixels, 6)
	for _, p := range c.Pixels {
		assert.Equal(t, parser.Color{}, p)
	}
}

func TestRasterizeClipsAndOverwrites(t *testing.T) {
	list := DisplayList{
		SolidRect{Rect: layout.Rect{X: -5, Y: -5, Width: 7, Height: 7}, Color: red},
		SolidRect{Rect: layout.Rect{X: 1, Y: 1, Width: 100, Height: 1.9}, Color: blue},
		SolidRect{Rect: layout.Rect{X: 1, Y: 0, Width: 1, Height: 1}, Color: parser.Color{G: 255, A: 10}},
	}
	c, err := Rasterize(list, 4, 3)
	require.NoError(t, err)

	tests := []struct {
		x, y int
		want parser.Color
	}{
		{0, 0, red},
		{1, 0, parser.Color{G: 255, A: 10}},
		{0, 1, red},
		{1, 1, blue},
		{3, 1, blue},
		{2, 0, parser.Color{}},
		{1, 2, parser.Color{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.At(tt.x, tt.y), "pixel (%d,%d)", tt.x, tt.y)
	}
}

func TestRasterizeOutsideCanvas(t *testing.T) {
	list := DisplayList{
		SolidRect{Rect: layout.Rect{X: 10, Y: 10, Width: 5, Height: 5}, Color: red},
		SolidRect{Rect: layout.Rect{X: -10, Y: 0, Width: 5, Height: 5}, Color: red},
	}
	c, err := Rasterize(list, 4, 4)
	require.NoError(t, err)
	for _, p := range c.Pixels {
		assert.Equal(t, parser.Color{}, p)
	}
}

func TestInvalidCanvas(t *testing.T) {
	for _, size := range [][2]int{{0, 1}, {1, 0}, {-3, 4}} {
		_, err := Rasterize(nil, size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidCanvas)
	}
}

func TestCanvasImage(t *testing.T) {
	c, err := Rasterize(DisplayList{
		SolidRect{Rect: layout.Rect{X: 1, Width: 1, Height: 1}, Color: parser.Color{R: 10, G: 20, B: 30, A: 40}},
	}, 2, 1)
	require.NoError(t, err)

	img := c.Image()
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 40}, img.NRGBAAt(1, 0))
}

func TestPaintPipeline(t *testing.T) {
	doc := dom.Elem("div", map[string]string{"id": "outer"},
		dom.Elem("div", map[string]string{"id": "inner"}),
	)
	css := `
		div { display: block; }
		#outer { background: #ff0000; height: 10px; }
		#inner { background: #0000ff; height: 4px; margin: 0 2px; }
	`
	root, err := layout.LayoutTree(style.Resolve(doc, parser.Parse(css)), layout.Viewport(8, 12))
	require.NoError(t, err)

	c, err := Paint(root, layout.Rect{Width: 8, Height: 12})
	require.NoError(t, err)
	assert.Equal(t, blue, c.At(2, 0))
	assert.Equal(t, red, c.At(1, 0), "outer background outside the child")
	assert.Equal(t, red, c.At(5, 5))
	assert.Equal(t, parser.Color{}, c.At(5, 11), "below the document")
}
