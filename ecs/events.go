package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// Board event types.
const (
	EventAssetAdded     = "asset_added"
	EventAssetRemoved   = "asset_removed"
	EventNoteCreated    = "note_created"
	EventNoteClosed     = "note_closed"
	EventSelection      = "selection"
	EventStudioResized  = "studio_resized"
	EventDragStarted    = "drag_started"
	EventDragReleased   = "drag_released"
	EventRationaleShown = "rationale_shown"
)

// EntityEvent carries the board id of the entity an event concerns.
type EntityEvent struct {
	Entity Entity
	ID     string
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

// Len reports how many events are queued.
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
