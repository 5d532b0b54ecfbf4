package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is one record exchanged with Kafka. Topic, Partition and Offset are only set on
// consumed messages.
type Message struct {
	Headers   map[string]string
	Topic     string
	Key       []byte
	Value     []byte
	Partition int
	Offset    int64
}

// Producer publishes messages, keeping one writer per topic.
type Producer struct {
	transport *kafkago.Transport
	writers   map[string]*kafkago.Writer
	brokers   []string
	mu        sync.Mutex
}

// NewProducer creates a Producer. It fails only when the SASL configuration is invalid.
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}

	mechanism, err := cfg.Mechanism()
	if err != nil {
		return nil, err
	}

	return &Producer{
		transport: &kafkago.Transport{
			ClientID: cfg.ClientID,
			TLS:      cfg.tlsConfig(),
			SASL:     mechanism,
		},
		writers: make(map[string]*kafkago.Writer),
		brokers: cfg.Brokers,
	}, nil
}

// Publish sends messages to the given topic. Messages sharing a key land on the same partition.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}

	out := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		km := kafkago.Message{Key: msg.Key, Value: msg.Value}
		for k, v := range msg.Headers {
			km.Headers = append(km.Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		out = append(out, km)
	}

	if err := p.writer(topic).WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes every writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing writer for topic %s: %w", topic, err))
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return errors.Join(errs...)
}

func (p *Producer) writer(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(p.brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireAll,
		Transport:    p.transport,
	}
	p.writers[topic] = w
	return w
}

// Ping requests cluster metadata from the configured brokers.
func (p *Producer) Ping(ctx context.Context) error {
	client := &kafkago.Client{
		Addr:      kafkago.TCP(p.brokers...),
		Transport: p.transport,
	}
	if _, err := client.Metadata(ctx, &kafkago.MetadataRequest{}); err != nil {
		return fmt.Errorf("kafka: metadata request failed: %w", err)
	}
	return nil
}
