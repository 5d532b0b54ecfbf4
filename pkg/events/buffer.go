package events

// Buffer holds the events an aggregate raised until a use case drains them for publishing.
// The zero value is ready to use.
type Buffer struct {
	pending []DomainEvent
}

// Record queues events in the order given.
func (b *Buffer) Record(evts ...DomainEvent) {
	b.pending = append(b.pending, evts...)
}

// Pending reports how many events are queued.
func (b *Buffer) Pending() int {
	return len(b.pending)
}

// Drain returns the queued events and empties the buffer. It returns nil when nothing is queued.
func (b *Buffer) Drain() []DomainEvent {
	if len(b.pending) == 0 {
		return nil
	}
	drained := b.pending
	b.pending = nil
	return drained
}
