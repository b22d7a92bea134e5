package events

import (
	"context"
	"log/slog"
	"sync"
)

// Bus fans events out to subscribers. Delivery is non-blocking: a
// subscriber that cannot keep up loses events instead of stalling the
// publisher. With an EventLog attached, every published event is also
// persisted.
type Bus struct {
	mu     sync.RWMutex
	byType map[string][]chan Event
	all    []chan Event
	log    *EventLog // optional persistence
	logger *slog.Logger
	closed bool
}

// NewBus creates an event bus. Pass a nil EventLog to disable persistence.
func NewBus(log *EventLog, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		byType: make(map[string][]chan Event),
		log:    log,
		logger: logger,
	}
}

// Publish persists the event and delivers it to type and all-event
// subscribers. Publishing on a closed bus is a no-op.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	targets := make([]chan Event, 0, len(b.byType[e.EventType()])+len(b.all))
	targets = append(targets, b.byType[e.EventType()]...)
	targets = append(targets, b.all...)
	b.mu.RUnlock()

	if b.log != nil {
		if _, err := b.log.Append(e); err != nil {
			// The log is an audit trail, not the transport; delivery
			// still happens.
			b.logger.Error("event persistence failed", "type", e.EventType(), "error", err)
		}
	}

	for _, ch := range targets {
		select {
		case ch <- e:
		default:
			b.logger.Warn("subscriber channel full, dropping event",
				"type", e.EventType(), "entity_id", e.EntityID())
		}
	}

	return nil
}

// Subscribe returns a channel receiving events of one type.
func (b *Bus) Subscribe(eventType string, bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.byType[eventType] = append(b.byType[eventType], ch)
	return ch
}

// SubscribeAll returns a channel receiving every event.
func (b *Bus) SubscribeAll(bufferSize int) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, bufferSize)
	b.all = append(b.all, ch)
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(ch <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.byType {
		if i := indexOf(subs, ch); i >= 0 {
			sub := subs[i]
			b.byType[eventType] = append(subs[:i], subs[i+1:]...)
			close(sub)
			return
		}
	}
	if i := indexOf(b.all, ch); i >= 0 {
		sub := b.all[i]
		b.all = append(b.all[:i], b.all[i+1:]...)
		close(sub)
	}
}

// Close closes every subscriber channel. Further publishes are dropped.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for _, subs := range b.byType {
		for _, ch := range subs {
			close(ch)
		}
	}
	for _, ch := range b.all {
		close(ch)
	}
	b.byType = nil
	b.all = nil

	return nil
}

func indexOf(subs []chan Event, ch <-chan Event) int {
	for i, sub := range subs {
		if sub == ch {
			return i
		}
	}
	return -1
}
