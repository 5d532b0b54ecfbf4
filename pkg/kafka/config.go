package kafka

import (
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Config holds Kafka connection parameters shared by producers and consumers.
type Config struct {
	ClientID      string
	ConsumerGroup string
	SASL          SASLConfig
	Brokers       []string
	TLS           bool
}

// SASLConfig enables SASL authentication when Username is set.
type SASLConfig struct {
	Mechanism string // "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512"
	Username  string
	Password  string
}

// Enabled reports whether SASL credentials were supplied.
func (s SASLConfig) Enabled() bool {
	return s.Username != ""
}

// Mechanism resolves the configured SASL mechanism. It returns nil when SASL is disabled.
func (c Config) Mechanism() (sasl.Mechanism, error) {
	if !c.SASL.Enabled() {
		return nil, nil
	}

	switch strings.ToUpper(c.SASL.Mechanism) {
	case "PLAIN", "":
		return plain.Mechanism{Username: c.SASL.Username, Password: c.SASL.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, c.SASL.Username, c.SASL.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, c.SASL.Username, c.SASL.Password)
	default:
		return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", c.SASL.Mechanism)
	}
}

func (c Config) tlsConfig() *tls.Config {
	if !c.TLS {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}
