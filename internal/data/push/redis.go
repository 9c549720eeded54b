package push

import (
	"context"
	"fmt"
	"strings"

	"github.com/penwyp/go-activity-monitor/internal/util"
	"github.com/redis/go-redis/v9"
)

// ChannelName returns the pub/sub channel carrying kind, with an optional prefix
func ChannelName(prefix string, kind Kind) string {
	if prefix == "" {
		return string(kind)
	}
	return strings.TrimSuffix(prefix, ":") + ":" + string(kind)
}

// SubscribeRedis subscribes to the three update channels. The message payload is
// the data array; the channel name selects the variant.
func SubscribeRedis(ctx context.Context, client *redis.Client, prefix string) (Subscription, error) {
	channels := make([]string, 0, len(Kinds))
	byChannel := make(map[string]Kind, len(Kinds))
	for _, kind := range Kinds {
		name := ChannelName(prefix, kind)
		channels = append(channels, name)
		byChannel[name] = kind
	}

	pubsub := client.Subscribe(ctx, channels...)
	// Wait for the subscription confirmation so publishes after return are not lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe redis channels: %w", err)
	}

	s := newStream(ctx, "redis")
	s.closer = pubsub.Close
	s.run(func(ctx context.Context) {
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				kind, known := byChannel[msg.Channel]
				if !known {
					util.LogDebug("Ignoring redis message", util.F("channel", msg.Channel))
					continue
				}
				s.deliver(string(kind), []byte(msg.Payload))
			}
		}
	})
	s.start()

	util.LogInfo("Subscribed to redis push", util.F("channels", strings.Join(channels, ",")))
	return s, nil
}
