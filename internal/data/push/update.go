package push

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-activity-monitor/internal/core/model"
)

// Kind names an inbound push event
type Kind string

const (
	KindDailySummary   Kind = "daily_summary_update"
	KindAppUsage       Kind = "app_usage_update"
	KindActivityEvents Kind = "activity_events_update"
)

// Kinds lists every event name the dashboard subscribes to
var Kinds = []Kind{KindDailySummary, KindAppUsage, KindActivityEvents}

// ErrUnknownEvent is returned by Decode for event names outside Kinds
var ErrUnknownEvent = errors.New("unknown push event")

// Update is a fully decoded push payload. Each variant carries the complete
// dataset for one dashboard section.
type Update interface {
	Kind() Kind
}

type DailySummaryUpdate struct {
	Points []model.DailySummaryPoint
}

func (DailySummaryUpdate) Kind() Kind { return KindDailySummary }

type AppUsageUpdate struct {
	Points []model.AppUsagePoint
}

func (AppUsageUpdate) Kind() Kind { return KindAppUsage }

type ActivityEventsUpdate struct {
	Events []model.ActivityEvent
}

func (ActivityEventsUpdate) Kind() Kind { return KindActivityEvents }

// Decode turns an event name and its JSON data array into the matching Update
func Decode(name string, payload []byte) (Update, error) {
	switch Kind(strings.TrimSpace(name)) {
	case KindDailySummary:
		var points []model.DailySummaryPoint
		if err := unmarshalPayload(payload, &points); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return DailySummaryUpdate{Points: points}, nil
	case KindAppUsage:
		var points []model.AppUsagePoint
		if err := unmarshalPayload(payload, &points); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return AppUsageUpdate{Points: points}, nil
	case KindActivityEvents:
		var events []model.ActivityEvent
		if err := unmarshalPayload(payload, &events); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return ActivityEventsUpdate{Events: events}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
}

func unmarshalPayload(payload []byte, v any) error {
	if len(payload) == 0 {
		return errors.New("empty payload")
	}
	return sonic.Unmarshal(payload, v)
}
