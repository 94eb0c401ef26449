// File: cmd/dump.go
package cmd

import (
	"github.com/Pablo96/robinson/internal/observability"
	"github.com/Pablo96/robinson/internal/render"
	"github.com/spf13/cobra"
)

// newDumpCmd creates the `dump` command, which prints the layout tree.
func newDumpCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the layout tree of a document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromContext(cmd.Context())
			if err != nil {
				return err
			}
			rc := cfg.Render()

			opts, err := render.OptionsFromConfig(rc)
			if err != nil {
				return err
			}
			opts.Format = render.FormatTree
			if asJSON {
				opts.Format = render.FormatJSON
			}

			in, err := loadInput(rc)
			if err != nil {
				return err
			}
			res, err := render.NewRunner(observability.GetLogger()).Execute(cmd.Context(), in, opts)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(res.Output)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of an outline")
	return cmd
}
