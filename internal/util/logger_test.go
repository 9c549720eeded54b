package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, level string, format LogFormat) (*Logger, *bytes.Buffer) {
	t.Helper()
	logger, err := NewLogger(level, "", false)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	logger.AddOutput(NewConsoleOutput(buf, format))
	return logger, buf
}

func TestLoggerLevels(t *testing.T) {
	logger, buf := newBufferLogger(t, "warn", FormatText)

	logger.Info("hidden")
	logger.Debug("hidden too")
	logger.Warn("shown", F("section", "daily"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown section=daily")

	logger.SetLevel(LevelDebug)
	logger.Debugf("now %d", 42)
	assert.Contains(t, buf.String(), "[DEBUG] now 42")
}

func TestLoggerWithAndComponent(t *testing.T) {
	logger, buf := newBufferLogger(t, "debug", FormatText)

	child := logger.Component("push").With(F("transport", "ws"))
	child.Info("connected", F("url", "ws://x"))

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[INFO] <push> connected")
	assert.Contains(t, line, "transport=ws url=ws://x")

	// Parent must not inherit child fields
	buf.Reset()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "transport")
}

func TestLoggerJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger(t, "info", FormatJSON)
	logger.Component("client").Error("fetch failed", F("status", 502))

	var entry LogEntry
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "client", entry.Component)
	assert.Equal(t, "fetch failed", entry.Message)
	assert.EqualValues(t, 502, entry.Fields["status"])
}

func TestLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger("info", path, false)
	require.NoError(t, err)

	logger.Info("written to file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}

func TestGlobalLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	SetLogger(nil)
	LogInfo("no logger, no panic")

	logger, buf := newBufferLogger(t, "debug", FormatText)
	SetLogger(logger)
	LogError("boom", F("at", "here"))
	LogDebugf("width %d", 80)
	LogDebug("detail", F("k", "v"))

	assert.Contains(t, buf.String(), "[ERROR] boom at=here")
	assert.Contains(t, buf.String(), "[DEBUG] width 80")
	assert.Contains(t, buf.String(), "[DEBUG] detail k=v")
}
