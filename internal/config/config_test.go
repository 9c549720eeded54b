package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false, nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Server)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "24h", cfg.TimeFormat)
	assert.Equal(t, "ws", cfg.Push.Transport)
	assert.Equal(t, "activity", cfg.Push.RedisPrefix)
	assert.Equal(t, 1.0, cfg.RefreshPerSecond)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true, nil)
	assert.Error(t, err)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
server: http://tracker:8080
time_format: 12h
push:
  transport: redis
  redis_addr: cache:6379
`)
	t.Setenv("ACTIVITY_MONITOR_PUSH_REDIS_PREFIX", "desk")
	t.Setenv("ACTIVITY_MONITOR_TIME_FORMAT", "24h")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server", "http://localhost:5000", "")
	flags.String("push", "ws", "")
	require.NoError(t, flags.Parse([]string{"--push", "file"}))

	cfg, err := Load(path, true, flags)
	require.NoError(t, err)

	assert.Equal(t, "http://tracker:8080", cfg.Server, "unset flag keeps the file value")
	assert.Equal(t, "file", cfg.Push.Transport, "explicit flag wins")
	assert.Equal(t, "cache:6379", cfg.Push.RedisAddr)
	assert.Equal(t, "desk", cfg.Push.RedisPrefix)
	assert.Equal(t, "24h", cfg.TimeFormat, "env overrides the file")
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad time format", "time_format: 25h\n"},
		{"refresh too fast", "refresh_per_second: 50\n"},
		{"empty server", "server: \"  \"\n"},
		{"malformed yaml", "server: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body), true, nil)
			assert.Error(t, err)
		})
	}
}

func TestLoadAutoTimezone(t *testing.T) {
	cfg, err := Load(writeConfig(t, "timezone: auto\n"), true, nil)
	require.NoError(t, err)
	assert.Equal(t, "Local", cfg.Timezone)
}
