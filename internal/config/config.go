package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ACTIVITY_MONITOR_PUSH_TRANSPORT
const EnvPrefix = "ACTIVITY_MONITOR"

// Config holds the settings shared by every command
type Config struct {
	Server           string        `mapstructure:"server"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	Timezone         string        `mapstructure:"timezone"`
	TimeFormat       string        `mapstructure:"time_format"`
	Debug            bool          `mapstructure:"debug"`
	Output           string        `mapstructure:"output"`
	RefreshPerSecond float64       `mapstructure:"refresh_per_second"`
	Push             PushConfig    `mapstructure:"push"`
}

// PushConfig selects and addresses the push transport
type PushConfig struct {
	Transport   string `mapstructure:"transport"`
	URL         string `mapstructure:"url"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisPrefix string `mapstructure:"redis_prefix"`
	WatchDir    string `mapstructure:"watch_dir"`
}

// flagKeys maps command-line flags onto config keys
var flagKeys = map[string]string{
	"server":             "server",
	"request-timeout":    "request_timeout",
	"timezone":           "timezone",
	"time-format":        "time_format",
	"debug":              "debug",
	"output":             "output",
	"refresh-per-second": "refresh_per_second",
	"push":               "push.transport",
	"push-url":           "push.url",
	"redis-addr":         "push.redis_addr",
	"redis-prefix":       "push.redis_prefix",
	"watch-dir":          "push.watch_dir",
}

// Load merges defaults, the YAML file at configPath, ACTIVITY_MONITOR_* variables
// and the flags that were set explicitly, in increasing precedence.
// A missing file is not an error unless required is true.
func Load(configPath string, required bool, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Read config file
	if configPath != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if !missing || required {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			// Config file not found, use defaults and environment variables
		}
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server", "http://localhost:5000")
	v.SetDefault("request_timeout", "15s")
	v.SetDefault("timezone", "Local")
	v.SetDefault("time_format", "24h")
	v.SetDefault("debug", false)
	v.SetDefault("output", "table")
	v.SetDefault("refresh_per_second", 1.0)

	// Push defaults
	v.SetDefault("push.transport", "ws")
	v.SetDefault("push.url", "")
	v.SetDefault("push.redis_addr", "localhost:6379")
	v.SetDefault("push.redis_prefix", "activity")
	v.SetDefault("push.watch_dir", "")
}

// validate validates the configuration
func validate(c *Config) error {
	if strings.TrimSpace(c.Server) == "" {
		return fmt.Errorf("server must not be empty")
	}
	if c.TimeFormat != "12h" && c.TimeFormat != "24h" {
		return fmt.Errorf("invalid time format '%s': must be either '12h' or '24h'", c.TimeFormat)
	}
	if c.RefreshPerSecond < 0.1 || c.RefreshPerSecond > 20 {
		return fmt.Errorf("refresh_per_second must be between 0.1 and 20")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.Timezone == "auto" {
		c.Timezone = "Local"
	}
	return nil
}
