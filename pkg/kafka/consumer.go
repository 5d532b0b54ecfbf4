package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes a consumed message. A returned error leaves the offset uncommitted.
type Handler func(ctx context.Context, msg Message) error

// Consumer reads one topic as part of a consumer group.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  *slog.Logger
}

// NewConsumer creates a Consumer for topic. cfg.ConsumerGroup is required so offsets are committed.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	if cfg.ConsumerGroup == "" {
		return nil, errors.New("kafka: consumer group is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}

	mechanism, err := cfg.Mechanism()
	if err != nil {
		return nil, err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 1 << 20,
		MaxWait:  500 * time.Millisecond,
		Dialer: &kafkago.Dialer{
			ClientID:      cfg.ClientID,
			Timeout:       10 * time.Second,
			DualStack:     true,
			TLS:           cfg.tlsConfig(),
			SASLMechanism: mechanism,
		},
	})

	return &Consumer{reader: reader, handler: handler, logger: logger}, nil
}

// Start consumes messages until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	cfg := c.reader.Config()
	c.logger.Info("consumer starting", "topic", cfg.Topic, "group", cfg.GroupID)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				c.logger.Info("consumer stopping", "topic", cfg.Topic)
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handler(ctx, fromKafkaMessage(m)); err != nil {
			c.logger.Error("handler error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}

func fromKafkaMessage(m kafkago.Message) Message {
	msg := Message{
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Key:       m.Key,
		Value:     m.Value,
		Headers:   make(map[string]string, len(m.Headers)),
	}
	for _, h := range m.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
