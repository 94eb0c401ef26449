// File: internal/render/encode.go
package render

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/Pablo96/robinson/internal/browser/layout"
	"github.com/Pablo96/robinson/internal/browser/paint"
	"github.com/Pablo96/robinson/internal/browser/pdf"
	jsoniter "github.com/json-iterator/go"
	"github.com/xlab/treeprint"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode serializes a layout tree in the requested format. Raster and
// vector output use the viewport as the page.
func Encode(root *layout.LayoutBox, opts Options) ([]byte, error) {
	bounds := layout.Rect{Width: opts.ViewportWidth, Height: opts.ViewportHeight}
	switch opts.Format {
	case FormatPNG:
		return EncodePNG(root, bounds)
	case FormatPDF:
		var buf bytes.Buffer
		err := pdf.Render(&buf, root, bounds,
			pdf.WithTitle(opts.PDFTitle),
			pdf.WithCompression(opts.PDFCompress))
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return EncodeJSON(root)
	case FormatTree:
		return []byte(EncodeTree(root)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

// EncodePNG paints the tree onto a canvas the size of bounds.
func EncodePNG(root *layout.LayoutBox, bounds layout.Rect) ([]byte, error) {
	canvas, err := paint.Paint(root, bounds)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeJSON dumps the layout tree as indented JSON.
func EncodeJSON(root *layout.LayoutBox) ([]byte, error) {
	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// EncodeTree renders the layout tree as an indented outline.
func EncodeTree(root *layout.LayoutBox) string {
	tree := treeprint.New()
	if root != nil {
		addBox(tree, root)
	}
	return tree.String()
}

func addBox(tree treeprint.Tree, box *layout.LayoutBox) {
	label := describe(box)
	if len(box.Children) == 0 {
		tree.AddNode(label)
		return
	}
	branch := tree.AddBranch(label)
	for _, c := range box.Children {
		addBox(branch, c)
	}
}

func describe(box *layout.LayoutBox) string {
	c := box.Dimensions.Content
	name := box.BoxType.String()
	if box.Label != "" {
		name += " " + box.Label
	}
	return fmt.Sprintf("%s [x=%g y=%g w=%g h=%g]", name, c.X, c.Y, c.Width, c.Height)
}
