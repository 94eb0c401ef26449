// File: internal/observability/logger_test.go
package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Pablo96/robinson/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// initBuffered resets the global logger and points its console output at a buffer.
func initBuffered(t *testing.T, cfg config.LoggerConfig) *bytes.Buffer {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))
	return &buf
}

func TestInitialize(t *testing.T) {
	t.Run("console logger colorizes levels", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "robinson",
			Colors:      config.ColorConfig{Info: "green"},
		})

		GetLogger().Info("layout finished", zap.Int("boxes", 3))
		Sync()

		out := buf.String()
		assert.Contains(t, out, colorGreen+"INFO"+colorReset)
		assert.Contains(t, out, "robinson.")
		assert.Contains(t, out, "layout finished")
		assert.Contains(t, out, `"boxes": 3`)
	})

	t.Run("json logger emits structured entries", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{
			Level:       "info",
			Format:      "json",
			ServiceName: "JSONTest",
		})

		GetLogger().Warn("selector skipped", zap.String("selector", "a:hover"))
		Sync()

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "JSONTest", entry["logger"])
		assert.Equal(t, "selector skipped", entry["msg"])
		assert.Equal(t, "a:hover", entry["selector"])
	})

	t.Run("level filters entries", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{Level: "warn", Format: "json"})
		GetLogger().Info("hidden")
		Sync()
		assert.Empty(t, buf.String())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{Level: "chatty", Format: "json"})
		GetLogger().Debug("hidden")
		GetLogger().Info("shown")
		Sync()
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("log file receives json copy", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "robinson.log")
		initBuffered(t, config.LoggerConfig{
			Level:   "debug",
			Format:  "console",
			LogFile: logFile,
			MaxSize: 1,
		})

		GetLogger().Error("written to file")
		Sync()

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"msg":"written to file"`)
	})

	t.Run("only the first initialization applies", func(t *testing.T) {
		buf := initBuffered(t, config.LoggerConfig{Level: "info", Format: "json", ServiceName: "First"})
		first := GetLogger()

		Initialize(config.LoggerConfig{Level: "debug", ServiceName: "Second"}, zapcore.AddSync(&bytes.Buffer{}))
		assert.Same(t, first, GetLogger())

		GetLogger().Info("test")
		Sync()
		assert.Contains(t, buf.String(), "First")
		assert.NotContains(t, buf.String(), "Second")
	})
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	first := GetLogger()
	require.NotNil(t, first)
	assert.Same(t, first, GetLogger(), "fallback is created once")

	buf := initBuffered(t, config.LoggerConfig{Level: "info", Format: "json"})
	_ = buf
	assert.Same(t, globalLogger.Load(), GetLogger())
}
