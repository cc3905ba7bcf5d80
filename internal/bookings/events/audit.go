package events

import (
	"context"

	"gudlft/pkg/kafka"
	"gudlft/pkg/logger"
	"gudlft/pkg/model"
)

// AuditRecord is one decoded booking event as the audit consumer sees it.
type AuditRecord struct {
	EventID       string
	EventType     string
	CorrelationID string
	Event         model.BookingEvent
}

// AuditSink receives decoded records. The audit command logs them.
type AuditSink func(ctx context.Context, record AuditRecord) error

// NewAuditHandler decodes booking events and hands them to sink. Payloads
// that cannot be decoded or carry an unknown type are permanent failures.
func NewAuditHandler(sink AuditSink) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		eventType := msg.GetEventType()
		if eventType != model.BookingEventCompleted && eventType != model.BookingEventRejected {
			return kafka.NewPermanentError("unknown booking event type "+eventType, nil)
		}

		var event model.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("failed to decode booking event", err)
		}

		return sink(ctx, AuditRecord{
			EventID:       msg.GetEventID(),
			EventType:     eventType,
			CorrelationID: msg.GetCorrelationID(),
			Event:         event,
		})
	}
}

// LogSink writes each record to log.
func LogSink(log *logger.Logger) AuditSink {
	return func(_ context.Context, record AuditRecord) error {
		e := record.Event
		log.Info("Booking event",
			"event_id", record.EventID,
			"event_type", record.EventType,
			"correlation_id", record.CorrelationID,
			"club", e.Club,
			"competition", e.Competition,
			"places", e.Places,
			"points_spent", e.PointsSpent,
			"points_remaining", e.PointsRemaining,
			"places_remaining", e.PlacesRemaining,
			"reason", e.Reason,
			"occurred_at", e.OccurredAt,
		)
		return nil
	}
}
