// Package events defines the contract shared by domain events and the collector that
// aggregates embed to buffer them until a use case drains and publishes them.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}
