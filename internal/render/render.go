// File: internal/render/render.go
package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Pablo96/robinson/internal/browser/dom"
	"github.com/Pablo96/robinson/internal/browser/layout"
	"github.com/Pablo96/robinson/internal/browser/parser"
	"github.com/Pablo96/robinson/internal/browser/style"
	"github.com/Pablo96/robinson/internal/observability"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Input is the source text of one document.
type Input struct {
	HTML []byte
	// CSS is the external author stylesheet. Embedded <style> elements are
	// applied after it.
	CSS string
}

// Stats records stage timings and tree sizes for a run.
type Stats struct {
	Parse       time.Duration
	Style       time.Duration
	Layout      time.Duration
	Encode      time.Duration
	Nodes       int
	StyledNodes int
	Boxes       int
	OutputBytes int
}

// Result is the outcome of a run.
type Result struct {
	RunID  string
	Format Format
	// Layout is nil when the root element is hidden.
	Layout *layout.LayoutBox
	Output []byte
	Stats  Stats
}

// Runner executes the pipeline: parse, resolve styles, lay out, encode.
// Every run is independent and re-executes all stages.
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger uses the global logger.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = observability.GetLogger()
	}
	return &Runner{logger: logger.Named("render")}
}

// Execute runs the pipeline. The context is checked between stages.
func (r *Runner) Execute(ctx context.Context, in Input, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	res := &Result{RunID: uuid.NewString(), Format: opts.Format}
	logger := r.logger.With(zap.String("run_id", res.RunID))
	logger.Debug("Starting render",
		zap.String("format", string(opts.Format)),
		zap.Float64("viewport_width", opts.ViewportWidth),
		zap.Float64("viewport_height", opts.ViewportHeight))

	// 1. Parse
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	doc, err := dom.Parse(bytes.NewReader(in.HTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	sheet := parser.Parse(in.CSS)
	for _, embedded := range doc.Styles {
		sheet = sheet.Append(parser.Parse(embedded))
	}
	res.Stats.Parse = time.Since(start)
	res.Stats.Nodes = doc.Root.Count()

	// 2. Style
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	var resolverOpts []style.Option
	if opts.UserAgentCSS {
		resolverOpts = append(resolverOpts, style.WithUserAgentSheet(style.DefaultUserAgentSheet()))
	}
	styled := style.NewResolver(resolverOpts...).Resolve(doc.Root, sheet)
	res.Stats.Style = time.Since(start)
	res.Stats.StyledNodes = styled.Count()

	// 3. Layout
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	root, err := layout.LayoutTree(styled, layout.Viewport(opts.ViewportWidth, opts.ViewportHeight))
	if err != nil {
		return nil, fmt.Errorf("layout failed: %w", err)
	}
	res.Layout = root
	res.Stats.Layout = time.Since(start)
	res.Stats.Boxes = root.Count()
	if root == nil {
		logger.Warn("Root element is hidden; output will be empty")
	}

	// 4. Encode
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	out, err := Encode(root, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s output: %w", opts.Format, err)
	}
	res.Output = out
	res.Stats.Encode = time.Since(start)
	res.Stats.OutputBytes = len(out)

	logger.Info("Render complete",
		zap.String("format", string(opts.Format)),
		zap.Int("nodes", res.Stats.Nodes),
		zap.Int("styled_nodes", res.Stats.StyledNodes),
		zap.Int("boxes", res.Stats.Boxes),
		zap.Int("bytes", res.Stats.OutputBytes),
		zap.Duration("parse", res.Stats.Parse),
		zap.Duration("style", res.Stats.Style),
		zap.Duration("layout", res.Stats.Layout),
		zap.Duration("encode", res.Stats.Encode))
	return res, nil
}
