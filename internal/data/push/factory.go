package push

import (
	"context"
	"fmt"
	"sync"

	"github.com/penwyp/go-activity-monitor/internal/util"
	"github.com/redis/go-redis/v9"
)

// Transport names accepted by Open
const (
	TransportNone      = "none"
	TransportWebSocket = "ws"
	TransportRedis     = "redis"
	TransportFile      = "file"
)

// Config selects and parameterises a push transport
type Config struct {
	Transport   string
	URL         string // ws
	RedisAddr   string // redis
	RedisPrefix string // redis
	WatchDir    string // file
}

// Open creates the subscription for cfg.Transport. It returns nil for "none".
func Open(ctx context.Context, cfg Config) (Subscription, error) {
	switch cfg.Transport {
	case TransportNone, "":
		util.LogDebug("Push updates disabled")
		return nil, nil
	case TransportWebSocket:
		if cfg.URL == "" {
			return nil, fmt.Errorf("ws push requires a url")
		}
		return DialWebSocket(ctx, cfg.URL, nil)
	case TransportRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis push requires an address")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sub, err := SubscribeRedis(ctx, client, cfg.RedisPrefix)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return withCloser(sub, client.Close), nil
	case TransportFile:
		if cfg.WatchDir == "" {
			return nil, fmt.Errorf("file push requires a directory")
		}
		return WatchDir(ctx, cfg.WatchDir)
	default:
		return nil, fmt.Errorf("unknown push transport: %s", cfg.Transport)
	}
}

type ownedSubscription struct {
	Subscription
	release func() error
	once    sync.Once
	err     error
}

func withCloser(sub Subscription, release func() error) Subscription {
	return &ownedSubscription{Subscription: sub, release: release}
}

func (o *ownedSubscription) Close() error {
	o.once.Do(func() {
		o.err = o.Subscription.Close()
		if rerr := o.release(); o.err == nil {
			o.err = rerr
		}
	})
	return o.err
}
