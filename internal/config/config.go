// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Interface defines read access to the application configuration plus the
// few setters the CLI needs after flags are parsed.
type Interface interface {
	Logger() LoggerConfig
	Render() RenderConfig

	SetRenderFormat(format string)
	SetRenderOutput(path string)
	SetViewport(width, height float64)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	RenderCfg RenderConfig `mapstructure:"render" yaml:"render"`
}

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Render() RenderConfig { return c.RenderCfg }

func (c *Config) SetRenderFormat(format string) { c.RenderCfg.Format = format }
func (c *Config) SetRenderOutput(path string)   { c.RenderCfg.Output = path }
func (c *Config) SetViewport(width, height float64) {
	c.RenderCfg.Viewport.Width = width
	c.RenderCfg.Viewport.Height = height
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color used for each log level.
type ColorConfig struct {
	Debug string `mapstructure:"debug" yaml:"debug"`
	Info  string `mapstructure:"info" yaml:"info"`
	Warn  string `mapstructure:"warn" yaml:"warn"`
	Error string `mapstructure:"error" yaml:"error"`
}

// RenderConfig describes one rendering run.
type RenderConfig struct {
	HTML         string         `mapstructure:"html" yaml:"html"`
	CSS          string         `mapstructure:"css" yaml:"css"`
	Output       string         `mapstructure:"output" yaml:"output"`
	Format       string         `mapstructure:"format" yaml:"format"`
	UserAgentCSS bool           `mapstructure:"user_agent_css" yaml:"user_agent_css"`
	Viewport     ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	PDF          PDFConfig      `mapstructure:"pdf" yaml:"pdf"`
}

// ViewportConfig is the initial containing block size in pixels.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

// PDFConfig tunes the vector backend.
type PDFConfig struct {
	Compress bool   `mapstructure:"compress" yaml:"compress"`
	Title    string `mapstructure:"title" yaml:"title"`
}

// SupportedFormats lists the values accepted for render.format.
var SupportedFormats = []string{"png", "pdf", "json", "tree"}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "robinson")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "magenta")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Render --
	v.SetDefault("render.html", "examples/test.html")
	v.SetDefault("render.css", "examples/test.css")
	v.SetDefault("render.output", "")
	v.SetDefault("render.format", "png")
	v.SetDefault("render.user_agent_css", true)
	v.SetDefault("render.viewport.width", 800.0)
	v.SetDefault("render.viewport.height", 600.0)
	v.SetDefault("render.pdf.compress", false)
	v.SetDefault("render.pdf.title", "")
}

// NewConfigFromViper creates a validated configuration from a viper instance.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.RenderCfg.Format = strings.ToLower(strings.TrimSpace(cfg.RenderCfg.Format))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.RenderCfg.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	if r.HTML == "" {
		return fmt.Errorf("html input path is required")
	}
	if r.Viewport.Width <= 0 || r.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", r.Viewport.Width, r.Viewport.Height)
	}
	for _, f := range SupportedFormats {
		if r.Format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (want one of %s)", r.Format, strings.Join(SupportedFormats, ", "))
}

// OutputPath returns the configured output path, or output.<format> when
// none is set.
func (r RenderConfig) OutputPath() string {
	if r.Output != "" {
		return r.Output
	}
	return "output." + r.Format
}
