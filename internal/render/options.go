// File: internal/render/options.go
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Pablo96/robinson/internal/config"
)

// Format selects the output encoding of a run.
type Format string

const (
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatTree Format = "tree"
)

// ErrUnsupportedFormat is returned for unknown output formats.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat normalizes and validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatPNG, FormatPDF, FormatJSON, FormatTree:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Options controls one pipeline run.
type Options struct {
	Format         Format
	ViewportWidth  float64
	ViewportHeight float64
	// UserAgentCSS applies the built-in default stylesheet.
	UserAgentCSS bool
	PDFCompress  bool
	PDFTitle     string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Format:         FormatPNG,
		ViewportWidth:  800,
		ViewportHeight: 600,
		UserAgentCSS:   true,
	}
}

// OptionsFromConfig converts the render section of the configuration.
func OptionsFromConfig(cfg config.RenderConfig) (Options, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Format:         format,
		ViewportWidth:  cfg.Viewport.Width,
		ViewportHeight: cfg.Viewport.Height,
		UserAgentCSS:   cfg.UserAgentCSS,
		PDFCompress:    cfg.PDF.Compress,
		PDFTitle:       cfg.PDF.Title,
	}
	return opts, opts.Validate()
}

// Validate checks the format. Viewport errors surface from layout.
func (o Options) Validate() error {
	_, err := ParseFormat(string(o.Format))
	return err
}
