package commands

import (
	"testing"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopCommandFlags(t *testing.T) {
	tests := []struct {
		flag         string
		defaultValue string
	}{
		{"push", "ws"},
		{"push-url", ""},
		{"redis-addr", "localhost:6379"},
		{"redis-prefix", "activity"},
		{"watch-dir", ""},
		{"refresh-per-second", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := topCmd.Flags().Lookup(tt.flag)
			require.NotNil(t, flag)
			assert.Equal(t, tt.defaultValue, flag.DefValue)
		})
	}
}

func TestNewTopConfig(t *testing.T) {
	cfg := &config.Config{
		Server:           "http://tracker:5000",
		RequestTimeout:   5 * time.Second,
		Timezone:         "UTC",
		TimeFormat:       "12h",
		RefreshPerSecond: 2,
		Push: config.PushConfig{
			Transport:   "file",
			RedisAddr:   "cache:6379",
			RedisPrefix: "desk",
			WatchDir:    "/var/feed",
		},
	}

	tc := newTopConfig(cfg)
	assert.Equal(t, "http://tracker:5000", tc.ServerURL)
	assert.Equal(t, 5*time.Second, tc.RequestTimeout)
	assert.Equal(t, "file", tc.PushTransport)
	assert.Equal(t, "/var/feed", tc.WatchDir)
	assert.Equal(t, "desk", tc.RedisPrefix)
	assert.Equal(t, 2.0, tc.UIRefreshRate)

	cfg.Push.WatchDir = ""
	assert.Empty(t, newTopConfig(cfg).WatchDir, "unset directory stays unset")
}

func TestRunTopValidation(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		errorMsg string
	}{
		{
			name:     "invalid time format",
			args:     []string{"top", "--push", "none", "--time-format", "invalid"},
			errorMsg: "invalid time format 'invalid': must be either '12h' or '24h'",
		},
		{
			name:     "refresh rate too high",
			args:     []string{"top", "--push", "none", "--time-format", "24h", "--refresh-per-second", "25"},
			errorMsg: "refresh_per_second must be between 0.1 and 20",
		},
		{
			name:     "file transport without directory",
			args:     []string{"top", "--push", "file", "--time-format", "24h", "--refresh-per-second", "1"},
			errorMsg: "requires --watch-dir",
		},
		{
			name:     "unknown transport",
			args:     []string{"top", "--push", "smoke", "--time-format", "24h", "--refresh-per-second", "1"},
			errorMsg: "invalid push transport 'smoke'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRoot(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}
