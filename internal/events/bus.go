package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Event is an in-process domain event. Nothing is persisted; the bus exists
// to decouple the engines from whatever surfaces their outcomes.
type Event struct {
	Topic      string
	OccurredAt time.Time
	Payload    any
}

// Notifier reacts to emitted events (toasts, logs, metrics).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus fans events out to all configured notifiers synchronously.
type Bus struct {
	Now       func() time.Time
	Notifiers []Notifier
}

// Emit dispatches the event to every notifier, joining their errors. A nil
// bus is a valid no-op so callers need no guards.
func (b *Bus) Emit(ctx context.Context, topic string, payload any) error {
	if b == nil {
		return nil
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return errors.New("events: topic is required")
	}
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}
	ev := Event{Topic: topic, OccurredAt: now, Payload: payload}
	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return joined
}

// LogNotifier writes each event to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event Event) error {
	n.Logger.Info().
		Str("topic", event.Topic).
		Time("occurred_at", event.OccurredAt).
		Interface("payload", event.Payload).
		Msg("domain_event")
	return nil
}
