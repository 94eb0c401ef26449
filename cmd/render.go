// File: cmd/render.go
package cmd

import (
	"fmt"
	"os"

	"github.com/Pablo96/robinson/internal/config"
	"github.com/Pablo96/robinson/internal/observability"
	"github.com/Pablo96/robinson/internal/render"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// runRender renders the configured document and writes the result.
func runRender(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := observability.GetLogger()

	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}
	rc := cfg.Render()

	opts, err := render.OptionsFromConfig(rc)
	if err != nil {
		return err
	}
	in, err := loadInput(rc)
	if err != nil {
		return err
	}

	res, err := render.NewRunner(logger).Execute(ctx, in, opts)
	if err != nil {
		return err
	}

	target := rc.OutputPath()
	if target == stdoutPath {
		_, err := cmd.OutOrStdout().Write(res.Output)
		return err
	}
	path, err := homedir.Expand(target)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", target, err)
	}
	if err := os.WriteFile(path, res.Output, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	logger.Info("Wrote output",
		zap.String("run_id", res.RunID),
		zap.String("path", path),
		zap.Int("bytes", len(res.Output)))
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s to %s\n", rc.HTML, path)
	return nil
}

// loadInput reads the HTML document and the optional external stylesheet.
func loadInput(rc config.RenderConfig) (render.Input, error) {
	html, err := readFile(rc.HTML)
	if err != nil {
		return render.Input{}, fmt.Errorf("failed to read html input: %w", err)
	}
	in := render.Input{HTML: html}
	if rc.CSS != "" {
		css, err := readFile(rc.CSS)
		if err != nil {
			return render.Input{}, fmt.Errorf("failed to read css input: %w", err)
		}
		in.CSS = string(css)
	}
	return in, nil
}

func readFile(p string) ([]byte, error) {
	path, err := homedir.Expand(p)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
