package ecs

// EventType names what an Event carries.
type EventType string

const (
	// EventButtonAction carries a ButtonAction once a press animation completes.
	EventButtonAction EventType = "button_action"
	// EventAnimationComplete carries the entity whose tagged track completed.
	EventAnimationComplete EventType = "animation_complete"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// ButtonAction is emitted when a skeleton button finishes its press animation.
type ButtonAction struct {
	Entity Entity
	Button string
	Action string
	Speed  float32
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

// Len reports how many events are waiting.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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
