// File: internal/config/config_test.go
package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "robinson", cfg.Logger().ServiceName)
	assert.Equal(t, "green", cfg.Logger().Colors.Info)

	r := cfg.Render()
	assert.Equal(t, "examples/test.html", r.HTML)
	assert.Equal(t, "examples/test.css", r.CSS)
	assert.Equal(t, "png", r.Format)
	assert.True(t, r.UserAgentCSS)
	assert.Equal(t, 800.0, r.Viewport.Width)
	assert.Equal(t, 600.0, r.Viewport.Height)
	assert.False(t, r.PDF.Compress)

	assert.NoError(t, cfg.Validate(), "defaults must validate")
}

// -- Validation Logic Tests --

func TestRenderValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RenderConfig)
		wantErr string
	}{
		{"valid", func(*RenderConfig) {}, ""},
		{"missing html", func(r *RenderConfig) { r.HTML = "" }, "html input path is required"},
		{"zero width", func(r *RenderConfig) { r.Viewport.Width = 0 }, "viewport must be positive"},
		{"negative height", func(r *RenderConfig) { r.Viewport.Height = -1 }, "viewport must be positive"},
		{"bad format", func(r *RenderConfig) { r.Format = "gif" }, `unsupported format "gif"`},
		{"pdf format", func(r *RenderConfig) { r.Format = "pdf" }, ""},
		{"tree format", func(r *RenderConfig) { r.Format = "tree" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewDefaultConfig().Render()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetters(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetRenderFormat("pdf")
	cfg.SetRenderOutput("page.pdf")
	cfg.SetViewport(1024, 768)

	var iface Interface = cfg
	assert.Equal(t, "pdf", iface.Render().Format)
	assert.Equal(t, "page.pdf", iface.Render().Output)
	assert.Equal(t, ViewportConfig{Width: 1024, Height: 768}, iface.Render().Viewport)
}

func TestOutputPath(t *testing.T) {
	r := NewDefaultConfig().Render()
	assert.Equal(t, "output.png", r.OutputPath())
	r.Format = "pdf"
	assert.Equal(t, "output.pdf", r.OutputPath())
	r.Output = "page.pdf"
	assert.Equal(t, "page.pdf", r.OutputPath())
}

// -- Factory Function Tests --

func TestNewConfigFromViper(t *testing.T) {
	t.Run("Successful Load from YAML", func(t *testing.T) {
		yamlBytes := []byte(`
logger:
  level: debug
render:
  html: page.html
  format: PDF
  viewport:
    width: 1024
  pdf:
    compress: true
    title: Example
`)
		v := viper.New()
		SetDefaults(v)
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlBytes)))

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logger().Level)
		assert.Equal(t, "page.html", cfg.Render().HTML)
		assert.Equal(t, "pdf", cfg.Render().Format, "format is normalized")
		assert.Equal(t, 1024.0, cfg.Render().Viewport.Width)
		assert.Equal(t, 600.0, cfg.Render().Viewport.Height, "unset keys keep defaults")
		assert.True(t, cfg.Render().PDF.Compress)
		assert.Equal(t, "Example", cfg.Render().PDF.Title)
	})

	t.Run("Validation Failure", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("render.viewport.height", 0)

		cfg, err := NewConfigFromViper(v)
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "viewport must be positive")
	})

	t.Run("Environment Variable Binding", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.SetEnvPrefix("ROBINSON")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		t.Setenv("ROBINSON_RENDER_FORMAT", "json")
		t.Setenv("ROBINSON_RENDER_VIEWPORT_WIDTH", "320")

		cfg, err := NewConfigFromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Render().Format)
		assert.Equal(t, 320.0, cfg.Render().Viewport.Width)
	})
}
