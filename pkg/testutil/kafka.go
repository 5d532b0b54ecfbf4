//go:build integration

package testutil

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

// KafkaContainer wraps a testcontainers Kafka instance.
type KafkaContainer struct {
	Brokers []string
}

// NewKafkaContainer starts a single-node Kafka broker. It is terminated through t.Cleanup.
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()

	kafkaContainer, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.6.1",
		kafka.WithClusterID("botscore-test"),
	)
	if err != nil {
		t.Fatalf("start kafka container: %v", err)
	}
	t.Cleanup(func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := kafkaContainer.Terminate(stopCtx); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := kafkaContainer.Brokers(ctx)
	if err != nil {
		t.Fatalf("kafka brokers: %v", err)
	}

	return &KafkaContainer{Brokers: brokers}
}

// CreateTopic creates a single-partition topic through the controller broker.
func (kc *KafkaContainer) CreateTopic(t *testing.T, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", kc.Brokers[0])
	if err != nil {
		t.Fatalf("failed to dial kafka: %v", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		t.Fatalf("failed to find kafka controller: %v", err)
	}
	cconn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		t.Fatalf("failed to dial kafka controller: %v", err)
	}
	defer cconn.Close()

	if err := cconn.CreateTopics(kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}); err != nil {
		t.Fatalf("failed to create topic %s: %v", topic, err)
	}
}

// ReadMessages reads n messages from the start of topic, failing the test on timeout.
func (kc *KafkaContainer) ReadMessages(t *testing.T, topic string, n int) []kafkago.Message {
	t.Helper()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   kc.Brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	msgs := make([]kafkago.Message, 0, n)
	for len(msgs) < n {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			t.Fatalf("read message %d of %d from %s: %v", len(msgs)+1, n, topic, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
