package ecs

// EventType names a gameplay event published by a system.
type EventType string

const (
	EventLevelComplete EventType = "level_complete"
	EventCheckpoint    EventType = "checkpoint"
	EventAlert         EventType = "alert"
)

// Event is a gameplay notification for code outside the systems, such as
// the scene flow in game.go.
type Event struct {
	Type   EventType
	Source Entity
	Data   any
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

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
