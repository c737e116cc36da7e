package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// PathEventKind identifies pathfinding outcomes.
type PathEventKind string

const (
	PathEventFound  PathEventKind = "path_found"
	PathEventFailed PathEventKind = "path_failed"
)

// PathEvent is emitted whenever an entity's path is recomputed.
type PathEvent struct {
	Entity    Entity
	Kind      PathEventKind
	Waypoints int
	RawLength int
	Err       error
}

// EventQueue is a simple FIFO queue.
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
