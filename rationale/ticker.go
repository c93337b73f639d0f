package rationale

// TickSource schedules a callback for the next display frame. A scheduled
// callback runs at most once; callers reschedule from inside the callback to
// keep running.
type TickSource interface {
	Schedule(fn func()) Handle
}

// Handle cancels a scheduled callback. Cancel is idempotent and safe to call
// after the callback already ran.
type Handle interface {
	Cancel()
}

// FrameTicker is a TickSource pumped by the host loop. The game calls Tick
// once per Update; tests call it directly.
type FrameTicker struct {
	nextID  uint64
	pending []*frameCallback
}

type frameCallback struct {
	id       uint64
	fn       func()
	canceled bool
}

func (c *frameCallback) Cancel() {
	if c == nil {
		return
	}
	c.canceled = true
}

// NewFrameTicker creates an empty ticker.
func NewFrameTicker() *FrameTicker {
	return &FrameTicker{}
}

// Schedule queues fn for the next Tick.
func (t *FrameTicker) Schedule(fn func()) Handle {
	if t == nil || fn == nil {
		return (*frameCallback)(nil)
	}
	t.nextID++
	cb := &frameCallback{id: t.nextID, fn: fn}
	t.pending = append(t.pending, cb)
	return cb
}

// Tick runs the callbacks that were pending when it was called. Callbacks
// scheduled during this tick run on the next one.
func (t *FrameTicker) Tick() {
	if t == nil || len(t.pending) == 0 {
		return
	}
	batch := t.pending
	t.pending = nil
	for _, cb := range batch {
		if cb.canceled {
			continue
		}
		cb.canceled = true
		cb.fn()
	}
}

// Pending reports how many live callbacks are waiting for the next tick.
func (t *FrameTicker) Pending() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, cb := range t.pending {
		if !cb.canceled {
			n++
		}
	}
	return n
}
