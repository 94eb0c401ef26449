// File: internal/browser/pdf/pdf.go
package pdf

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Pablo96/robinson/internal/browser/layout"
	"github.com/Pablo96/robinson/internal/browser/paint"
	"github.com/Pablo96/robinson/internal/observability"
	"go.uber.org/zap"
)

// ErrInvalidPage is returned when the page has no positive area.
var ErrInvalidPage = errors.New("pdf page must have a positive width and height")

// Object numbers of the fixed single-page document.
const (
	objCatalog = iota + 1
	objPages
	objPage
	objContent
	objInfo
	objCount
)

const defaultProducer = "robinson"

type options struct {
	title    string
	producer string
	compress bool
}

// Option configures the serializer.
type Option func(*options)

// WithTitle sets the document title in the info dictionary.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithProducer overrides the producer recorded in the info dictionary.
func WithProducer(producer string) Option {
	return func(o *options) { o.producer = producer }
}

// WithCompression Flate-encodes the page content stream.
func WithCompression(enabled bool) Option {
	return func(o *options) { o.compress = enabled }
}

// Serialize writes a display list as a single-page PDF document of the
// given size in points. Layout coordinates have their origin at the top
// left, so every rectangle is flipped with y' = height - y - h.
func Serialize(list paint.DisplayList, width, height float64, opts ...Option) ([]byte, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidPage, width, height)
	}
	o := options{producer: defaultProducer}
	for _, opt := range opts {
		opt(&o)
	}

	content, fills := contentStream(list, height)
	if o.compress {
		var err error
		if content, err = deflate(content); err != nil {
			return nil, fmt.Errorf("failed to compress content stream: %w", err)
		}
	}

	w := &writer{offsets: make([]int, objCount)}
	w.WriteString("%PDF-1.7\n%\xb5\xed\xae\xfb\n")

	w.object(objCatalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", objPages))
	w.object(objPages, fmt.Sprintf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", objPage))
	w.object(objPage, fmt.Sprintf(
		"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %s %s] /Resources << >> /Contents %d 0 R >>",
		objPages, formatNumber(width), formatNumber(height), objContent))

	filter := ""
	if o.compress {
		filter = " /Filter /FlateDecode"
	}
	w.begin(objContent)
	fmt.Fprintf(w, "<< /Length %d%s >>\nstream\n", len(content), filter)
	w.Write(content)
	w.WriteString("\nendstream\n")
	w.end()

	info := "<< /Producer " + literalString(o.producer)
	if o.title != "" {
		info += " /Title " + literalString(o.title)
	}
	w.object(objInfo, info+" >>")

	w.trailer()

	observability.GetLogger().Debug("Serialized PDF",
		zap.Int("fills", fills),
		zap.Int("bytes", w.Len()),
		zap.Bool("compressed", o.compress))
	return w.Bytes(), nil
}

// Render serializes a layout tree onto a page the size of bounds.
func Render(out io.Writer, root *layout.LayoutBox, bounds layout.Rect, opts ...Option) error {
	doc, err := Serialize(paint.BuildDisplayList(root), bounds.Width, bounds.Height, opts...)
	if err != nil {
		return err
	}
	_, err = out.Write(doc)
	return err
}

// writer tracks the byte offset of every object for the xref table.
type writer struct {
	bytes.Buffer
	offsets []int
}

func (w *writer) begin(id int) {
	w.offsets[id] = w.Len()
	fmt.Fprintf(w, "%d 0 obj\n", id)
}

func (w *writer) end() {
	w.WriteString("endobj\n")
}

func (w *writer) object(id int, body string) {
	w.begin(id)
	w.WriteString(body)
	w.WriteString("\n")
	w.end()
}

func (w *writer) trailer() {
	start := w.Len()
	fmt.Fprintf(w, "xref\n0 %d\n", objCount)
	// Entries are exactly 20 bytes including the two-byte line ending.
	w.WriteString("0000000000 65535 f \n")
	for id := 1; id < objCount; id++ {
		fmt.Fprintf(w, "%010d 00000 n \n", w.offsets[id])
	}
	fmt.Fprintf(w, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\n", objCount, objCatalog, objInfo)
	fmt.Fprintf(w, "startxref\n%d\n%%%%EOF\n", start)
}

// contentStream emits one fill per visible command. Partially transparent
// colors are filled opaque.
func contentStream(list paint.DisplayList, pageHeight float64) ([]byte, int) {
	var b bytes.Buffer
	fills := 0
	for _, cmd := range list {
		switch cmd := cmd.(type) {
		case paint.SolidRect:
			if cmd.Color.A == 0 {
				continue
			}
			r := cmd.Rect
			fmt.Fprintf(&b, "%s %s %s rg\n%s %s %s %s re\nf\n",
				channel(cmd.Color.R), channel(cmd.Color.G), channel(cmd.Color.B),
				formatNumber(r.X), formatNumber(pageHeight-r.Y-r.Height),
				formatNumber(r.Width), formatNumber(r.Height))
			fills++
		}
	}
	return b.Bytes(), fills
}

func deflate(data []byte) ([]byte, error) {
	var b bytes.Buffer
	zw := zlib.NewWriter(&b)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func channel(v uint8) string {
	return formatNumber(float64(v) / 255)
}

// formatNumber prints at most four decimals without trailing zeros.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`, "\n", `\n`)

func literalString(s string) string {
	return "(" + literalEscaper.Replace(s) + ")"
}
