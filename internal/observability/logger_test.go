package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/malvarino/mathcli/internal/config"
)

// syncBuffer adapts a bytes.Buffer to zapcore.WriteSyncer.
type syncBuffer struct {
	bytes.Buffer
}

func (*syncBuffer) Sync() error { return nil }

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, zapcore.ErrorLevel, VerbosityLevel(0))
	assert.Equal(t, zapcore.WarnLevel, VerbosityLevel(1))
	assert.Equal(t, zapcore.InfoLevel, VerbosityLevel(2))
	assert.Equal(t, zapcore.DebugLevel, VerbosityLevel(3))
	assert.Equal(t, zapcore.DebugLevel, VerbosityLevel(7))
	assert.Equal(t, zapcore.ErrorLevel, VerbosityLevel(-1))
}

func TestInitialize(t *testing.T) {
	t.Run("console format", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "debug",
			Format:      "console",
			ServiceName: "mathcli",
		}, &buf)
		GetLogger().Debug("interpreting line", zap.Int("line", 3))

		out := buf.String()
		assert.Contains(t, out, "DEBUG")
		assert.Contains(t, out, "interpreting line")
		assert.Contains(t, out, "mathcli")
	})

	t.Run("json format", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{
			Level:       "warn",
			Format:      "json",
			ServiceName: "mathcli",
		}, &buf)
		GetLogger().Warn("parse error ignored", zap.String("text", "abc"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "parse error ignored", entry["msg"])
		assert.Equal(t, "abc", entry["text"])
	})

	t.Run("level filters lower entries", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{Level: "error", Format: "console"}, &buf)
		GetLogger().Warn("should be dropped")
		GetLogger().Error("should be kept")

		out := buf.String()
		assert.NotContains(t, out, "should be dropped")
		assert.Contains(t, out, "should be kept")
	})

	t.Run("bad level falls back to error", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{Level: "shout", Format: "console"}, &buf)
		GetLogger().Info("quiet")
		GetLogger().Error("loud")

		out := buf.String()
		assert.NotContains(t, out, "quiet")
		assert.Contains(t, out, "loud")
	})

	t.Run("tees into log file when configured", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer
		logFile := filepath.Join(t.TempDir(), "mathcli.log")

		Initialize(config.LoggerConfig{
			Level:   "debug",
			Format:  "console",
			LogFile: logFile,
			MaxSize: 1,
		}, &buf)
		GetLogger().Error("this goes to the file too")
		Sync()

		content, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "this goes to the file too")
	})

	t.Run("initializes only once", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer

		Initialize(config.LoggerConfig{Level: "info", ServiceName: "first"}, &buf)
		first := GetLogger()
		Initialize(config.LoggerConfig{Level: "debug", ServiceName: "second"}, &buf)
		second := GetLogger()

		assert.Same(t, first, second)
	})
}

func TestGetLogger(t *testing.T) {
	t.Run("nop before initialization", func(t *testing.T) {
		ResetForTest()
		logger := GetLogger()
		require.NotNil(t, logger)
		// A nop logger must not panic and must discard everything.
		logger.Error("discarded")
	})

	t.Run("global after initialization", func(t *testing.T) {
		ResetForTest()
		var buf syncBuffer
		Initialize(config.LoggerConfig{Level: "info"}, &buf)
		assert.Same(t, globalLogger.Load(), GetLogger())
	})
}
