// Package events publishes booking outcomes to Kafka and reads them back for
// the audit consumer.
package events

import (
	"context"
	"fmt"

	"gudlft/pkg/kafka"
	"gudlft/pkg/model"
)

const SchemaVersion = "1"

type Publisher interface {
	Publish(ctx context.Context, eventType string, event model.BookingEvent) error
	Close() error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer MessagePublisher
	source   string
}

func NewKafkaPublisher(producer MessagePublisher, source string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
	}
}

// Publish sends the event keyed by club name so a club's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, event model.BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.Club).
		WithEventID(event.ReceiptID).
		WithEventType(eventType).
		WithCorrelationID(CorrelationID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithTimestamp(event.OccurredAt).
		WithValue(event).
		BuildChecked()
	if err != nil {
		return err
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s for club %q: %w", eventType, event.Club, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NoopPublisher drops every event. Used when events are disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, model.BookingEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

type correlationKey struct{}

// WithCorrelationID stores the request id events should carry.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
