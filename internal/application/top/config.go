package top

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/data/push"
)

// TopConfig contains configuration for the top command
type TopConfig struct {
	// Backend
	ServerURL      string
	RequestTimeout time.Duration

	// Push intake
	PushTransport string // ws, redis, file, none
	PushURL       string
	RedisAddr     string
	RedisPrefix   string
	WatchDir      string

	// Display settings
	Timezone   string
	TimeFormat string

	// Refresh settings
	UIRefreshRate float64
}

// Validate fills defaults and checks the push settings
func (c *TopConfig) Validate() error {
	if c.ServerURL == "" {
		c.ServerURL = "http://localhost:5000"
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 15 * time.Second
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "24h"
	}
	if c.UIRefreshRate <= 0 {
		c.UIRefreshRate = 1
	}
	if c.PushTransport == "" {
		c.PushTransport = push.TransportWebSocket
	}

	switch c.PushTransport {
	case push.TransportNone:
	case push.TransportWebSocket:
		if c.PushURL == "" {
			derived, err := websocketURL(c.ServerURL)
			if err != nil {
				return err
			}
			c.PushURL = derived
		}
	case push.TransportRedis:
		if c.RedisAddr == "" {
			c.RedisAddr = "localhost:6379"
		}
	case push.TransportFile:
		if c.WatchDir == "" {
			return fmt.Errorf("push transport 'file' requires --watch-dir")
		}
	default:
		return fmt.Errorf("invalid push transport '%s': must be one of ws, redis, file, none", c.PushTransport)
	}
	return nil
}

// PushConfig returns the transport settings for push.Open
func (c *TopConfig) PushConfig() push.Config {
	return push.Config{
		Transport:   c.PushTransport,
		URL:         c.PushURL,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
		WatchDir:    c.WatchDir,
	}
}

// websocketURL maps the backend URL onto its /ws push endpoint
func websocketURL(server string) (string, error) {
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("invalid server url '%s': %w", server, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}
