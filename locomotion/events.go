package locomotion

// EventKind identifies controller notifications.
type EventKind string

const (
	// EventLanded fires once on every airborne-to-grounded transition.
	EventLanded EventKind = "landed"
	// EventJumped fires on successful standing jumps only, never on
	// wall jumps.
	EventJumped EventKind = "jumped"
)

// Event is a fire-and-forget controller notification.
type Event struct {
	Kind EventKind
}

// EventQueue is a simple FIFO drained by the owning system.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
