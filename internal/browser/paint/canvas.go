// File: internal/browser/paint/canvas.go
package paint

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Pablo96/robinson/internal/browser/layout"
	"github.com/Pablo96/robinson/internal/browser/parser"
	"github.com/Pablo96/robinson/internal/observability"
	"go.uber.org/zap"
)

// ErrInvalidCanvas is returned for canvases without a positive area.
var ErrInvalidCanvas = errors.New("canvas must have a positive width and height")

// Canvas is a row-major RGBA pixel buffer.
type Canvas struct {
	Width  int
	Height int
	Pixels []parser.Color
}

// NewCanvas allocates a canvas with every pixel zeroed (transparent black).
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidCanvas, width, height)
	}
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]parser.Color, width*height),
	}, nil
}

// At returns the pixel at (x, y).
func (c *Canvas) At(x, y int) parser.Color {
	return c.Pixels[y*c.Width+x]
}

// Draw applies one command. Rectangles are clipped to the canvas and the
// covered pixels are overwritten with the command color.
func (c *Canvas) Draw(cmd DrawCommand) {
	switch cmd := cmd.(type) {
	case SolidRect:
		x0 := clampPixel(cmd.Rect.X, c.Width)
		y0 := clampPixel(cmd.Rect.Y, c.Height)
		x1 := clampPixel(cmd.Rect.X+cmd.Rect.Width, c.Width)
		y1 := clampPixel(cmd.Rect.Y+cmd.Rect.Height, c.Height)
		for y := y0; y < y1; y++ {
			row := c.Pixels[y*c.Width : (y+1)*c.Width]
			for x := x0; x < x1; x++ {
				row[x] = cmd.Color
			}
		}
	}
}

// clampPixel clamps a coordinate into [0, limit] and truncates it.
func clampPixel(v float64, limit int) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(v, float64(limit))))
}

// Rasterize draws the commands in order onto a fresh canvas.
func Rasterize(list DisplayList, width, height int) (*Canvas, error) {
	canvas, err := NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	for _, cmd := range list {
		canvas.Draw(cmd)
	}
	return canvas, nil
}

// Paint builds the display list for a layout tree and rasterizes it into a
// canvas the size of bounds.
func Paint(root *layout.LayoutBox, bounds layout.Rect) (*Canvas, error) {
	list := BuildDisplayList(root)
	canvas, err := Rasterize(list, int(bounds.Width), int(bounds.Height))
	if err != nil {
		return nil, err
	}
	observability.GetLogger().Debug("Painted canvas",
		zap.Int("commands", len(list)),
		zap.Int("width", canvas.Width),
		zap.Int("height", canvas.Height))
	return canvas, nil
}

// Image converts the canvas to a non-premultiplied image for encoding.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.Pixels[y*c.Width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A})
		}
	}
	return img
}
