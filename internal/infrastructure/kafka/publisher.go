package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/clippintel/botscore/internal/domain/port"
	"github.com/clippintel/botscore/pkg/events"
	pkgkafka "github.com/clippintel/botscore/pkg/kafka"
)

// MessageProducer is the part of pkg/kafka.Producer the publisher depends on.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

var _ port.EventPublisher = (*Publisher)(nil)

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	producer MessageProducer
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageProducer, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka keyed by analysis id, so every event of one
// analysis lands on the same partition in recording order.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("analysis_id", evt.AggregateID().String()),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		headers := map[string]string{
			"event_type":   eventType,
			"content_type": "application/json",
			"occurred_at":  evt.OccurredAt().UTC().Format(time.RFC3339Nano),
		}
		otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

		messages = append(messages, pkgkafka.Message{
			Key:     []byte(evt.AggregateID().String()),
			Value:   payload,
			Headers: headers,
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
