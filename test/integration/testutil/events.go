package testutil

import (
	"context"
	"sync"

	"gudlft/internal/bookings/events"
	"gudlft/pkg/model"
)

// EventRecorder stands in for the Kafka publisher.
type EventRecorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

type RecordedEvent struct {
	Type          string
	CorrelationID string
	Event         model.BookingEvent
}

func (r *EventRecorder) Publish(ctx context.Context, eventType string, event model.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, RecordedEvent{
		Type:          eventType,
		CorrelationID: events.CorrelationID(ctx),
		Event:         event,
	})
	return nil
}

func (r *EventRecorder) Close() error { return nil }

func (r *EventRecorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedEvent(nil), r.events...)
}
