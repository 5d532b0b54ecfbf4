package events_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clippintel/botscore/pkg/events"
)

type testEvent struct {
	id        uuid.UUID
	eventType string
	at        time.Time
}

func (e testEvent) EventType() string      { return e.eventType }
func (e testEvent) AggregateID() uuid.UUID { return e.id }
func (e testEvent) OccurredAt() time.Time  { return e.at }

func newTestEvent(eventType string) testEvent {
	return testEvent{id: uuid.New(), eventType: eventType, at: time.Now().UTC()}
}

func TestBuffer(t *testing.T) {
	var buf events.Buffer
	assert.Zero(t, buf.Pending())
	assert.Nil(t, buf.Drain())

	buf.Record(newTestEvent("analysis.completed"))
	buf.Record(newTestEvent("analysis.high_risk"), newTestEvent("analysis.degraded"))
	assert.Equal(t, 3, buf.Pending())

	drained := buf.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, "analysis.completed", drained[0].EventType())
	assert.Equal(t, "analysis.high_risk", drained[1].EventType())
	assert.Equal(t, "analysis.degraded", drained[2].EventType())

	assert.Zero(t, buf.Pending())
	assert.Nil(t, buf.Drain(), "a second drain returns nothing")
}
