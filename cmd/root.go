// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Pablo96/robinson/internal/config"
	"github.com/Pablo96/robinson/internal/observability"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type contextKey string

const configKey contextKey = "config"

// NewRootCommand builds a fresh command tree. Each call gets its own viper
// instance and flag state.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string
	defaults := config.NewDefaultConfig().Render()

	cmd := &cobra.Command{
		Use:   "robinson",
		Short: "Robinson renders HTML and CSS into PNG or PDF.",
		Long: `Robinson is a small layout engine. It parses an HTML document and a
stylesheet, resolves the cascade, lays out block and inline boxes in a
viewport, and paints the result to a PNG image or a single-page PDF.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.SetDefaults(v)

			// 1. Initialize configuration loading
			if err := initializeConfig(v, cfgFile); err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger())
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// 2. Create the configuration object from viper.
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.NewDefaultConfig().Logger())
				return fmt.Errorf("failed to load or validate config: %w", err)
			}

			// 3. Initialize the logger with the loaded config.
			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting robinson", zap.String("version", Version))

			// 4. Store the validated config in the command's context for subcommands.
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./robinson.yaml)")
	flags.StringP("html", "h", defaults.HTML, "HTML document")
	flags.StringP("css", "c", defaults.CSS, "CSS stylesheet")
	flags.StringP("output", "o", "", `output file, "-" for stdout (default "output.<format>")`)
	flags.StringP("format", "f", defaults.Format, "output format: "+strings.Join(config.SupportedFormats, "|"))
	flags.Float64("width", defaults.Viewport.Width, "viewport width in pixels")
	flags.Float64("height", defaults.Viewport.Height, "viewport height in pixels")
	// -h names the HTML file, so help is long-only.
	flags.Bool("help", false, "help for robinson")

	bindings := map[string]string{
		"render.html":            "html",
		"render.css":             "css",
		"render.output":          "output",
		"render.format":          "format",
		"render.viewport.width":  "width",
		"render.viewport.height": "height",
	}
	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %q: %v", flag, err))
		}
	}

	cmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)
	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command with a signal-aware context.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
	}
	observability.Sync()
	return err
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("invalid config path %q: %w", cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("robinson")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ROBINSON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return nil
}

// configFromContext returns the configuration stored by PersistentPreRunE.
func configFromContext(ctx context.Context) (config.Interface, error) {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}
