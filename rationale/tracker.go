package rationale

import (
	"honnef.co/go/curve"
)

// Source is a visual entity that anchors one end of a connector.
type Source struct {
	ID       string
	Category Category
	Name     string
}

// RectProvider returns the current on-screen bounds of a source.
type RectProvider interface {
	Rect(id string) (curve.Rect, bool)
}

// RectProviderFunc adapts a function to RectProvider.
type RectProviderFunc func(id string) (curve.Rect, bool)

func (f RectProviderFunc) Rect(id string) (curve.Rect, bool) { return f(id) }

// Projector maps a 3D object to a point relative to the container origin.
type Projector interface {
	Project(objectID string) (curve.Point, bool)
}

// ProjectorFunc adapts a function to Projector.
type ProjectorFunc func(objectID string) (curve.Point, bool)

func (f ProjectorFunc) Project(objectID string) (curve.Point, bool) { return f(objectID) }

// ContainerProvider returns the screen bounds of the view hosting the target.
type ContainerProvider interface {
	Container() (curve.Rect, bool)
}

// ContainerProviderFunc adapts a function to ContainerProvider.
type ContainerProviderFunc func() (curve.Rect, bool)

func (f ContainerProviderFunc) Container() (curve.Rect, bool) { return f() }

// TargetMode selects how the focal point is derived.
type TargetMode int

const (
	// TargetFixed uses the container centre.
	TargetFixed TargetMode = iota
	// TargetTracked uses the projection of a 3D object.
	TargetTracked
)

func (m TargetMode) String() string {
	switch m {
	case TargetFixed:
		return "fixed"
	case TargetTracked:
		return "tracked"
	default:
		return "unknown"
	}
}

// Target is the explicit focal point input.
type Target struct {
	Mode     TargetMode
	ObjectID string
}

// FixedTarget focuses the container centre.
func FixedTarget() Target { return Target{Mode: TargetFixed} }

// TrackedTarget focuses the projected position of objectID.
func TrackedTarget(objectID string) Target {
	if objectID == "" {
		return FixedTarget()
	}
	return Target{Mode: TargetTracked, ObjectID: objectID}
}

// State is the tracking loop state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Config wires a Tracker to its collaborators. Ticks and Publish are
// required; the providers may be nil, in which case nothing resolves.
type Config struct {
	Builder   Builder
	Ticks     TickSource
	Rects     RectProvider
	Projector Projector
	// Container is the area tracked points are measured from.
	Container ContainerProvider
	// Window is the whole studio window. Fixed targets, and tracked ones
	// without a projection, aim at its centre. Nil means Container.
	Window ContainerProvider
	// Fallback is used when the container itself cannot be resolved.
	Fallback curve.Point
	Publish  func([]Descriptor)
}

// Tracker recomputes connector descriptors once per tick while visible.
// All methods must be called from the goroutine that pumps the TickSource.
type Tracker struct {
	cfg Config

	visible bool
	closed  bool
	state   State

	sources []Source
	target  Target

	handle Handle
	// subscription generation; callbacks from an older one never publish
	gen uint64

	frames int
}

// NewTracker creates an idle tracker.
func NewTracker(cfg Config) *Tracker {
	if cfg.Builder.Palette.Colors == nil && cfg.Builder.LabelPrefix == "" {
		cfg.Builder = NewBuilder()
	}
	return &Tracker{cfg: cfg, target: FixedTarget()}
}

// State reports Idle or Running.
func (t *Tracker) State() State {
	if t == nil {
		return StateIdle
	}
	return t.state
}

// Frames counts publishes since creation.
func (t *Tracker) Frames() int {
	if t == nil {
		return 0
	}
	return t.frames
}

// Target returns the current focal point input.
func (t *Tracker) Target() Target {
	if t == nil {
		return FixedTarget()
	}
	return t.target
}

// SetVisible drives the Idle/Running transition.
func (t *Tracker) SetVisible(visible bool) {
	if t == nil || t.closed {
		return
	}
	t.visible = visible
	if visible {
		if t.state == StateIdle {
			t.subscribe()
		}
		return
	}
	t.unsubscribe()
}

// Watch replaces the watched source list. A running tracker resubscribes.
func (t *Tracker) Watch(sources []Source) {
	if t == nil || t.closed {
		return
	}
	t.sources = append([]Source(nil), sources...)
	t.resubscribe()
}

// SetTarget switches the focal point. A running tracker resubscribes when the
// target actually changes.
func (t *Tracker) SetTarget(target Target) {
	if t == nil || t.closed {
		return
	}
	if target.Mode == TargetTracked && target.ObjectID == "" {
		target = FixedTarget()
	}
	if target == t.target {
		return
	}
	t.target = target
	t.resubscribe()
}

// SetBuilder swaps the connector builder. The next published frame uses it.
func (t *Tracker) SetBuilder(b Builder) {
	if t == nil {
		return
	}
	t.cfg.Builder = b
}

// Close stops the tracker for good.
func (t *Tracker) Close() {
	if t == nil || t.closed {
		return
	}
	t.unsubscribe()
	t.visible = false
	t.closed = true
}

// Frame computes one descriptor list without publishing it.
func (t *Tracker) Frame() []Descriptor {
	if t == nil {
		return []Descriptor{}
	}
	return Compute(t.cfg.Builder, t.sources, t.cfg.Rects, t.ResolveTarget())
}

// ResolveTarget returns the focal point in screen space for this frame.
func (t *Tracker) ResolveTarget() curve.Point {
	if t == nil {
		return curve.Point{}
	}
	var (
		container curve.Rect
		ok        bool
	)
	if t.cfg.Container != nil {
		container, ok = t.cfg.Container.Container()
	}
	if !ok {
		return t.cfg.Fallback
	}
	if t.target.Mode == TargetTracked && t.cfg.Projector != nil {
		if p, ok := t.cfg.Projector.Project(t.target.ObjectID); ok {
			return curve.Pt(container.X0+p.X, container.Y0+p.Y)
		}
	}
	if t.cfg.Window != nil {
		if window, ok := t.cfg.Window.Container(); ok {
			return window.Center()
		}
	}
	return container.Center()
}

// Compute builds descriptors for every source with a resolvable rectangle,
// in source order. It never returns nil.
func Compute(b Builder, sources []Source, rects RectProvider, target curve.Point) []Descriptor {
	out := make([]Descriptor, 0, len(sources))
	if rects == nil {
		return out
	}
	for _, src := range sources {
		r, ok := rects.Rect(src.ID)
		if !ok {
			continue
		}
		d := b.Build(r, target, src.Category, src.Name)
		d.SourceID = src.ID
		out = append(out, d)
	}
	return out
}

func (t *Tracker) resubscribe() {
	if t.state != StateRunning {
		return
	}
	t.unsubscribe()
	if t.visible {
		t.subscribe()
	}
}

func (t *Tracker) subscribe() {
	if t.cfg.Ticks == nil {
		return
	}
	t.gen++
	t.state = StateRunning
	gen := t.gen
	t.publish(gen)
	if gen == t.gen && t.state == StateRunning {
		t.schedule(gen)
	}
}

func (t *Tracker) unsubscribe() {
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
	t.gen++
	t.state = StateIdle
}

func (t *Tracker) schedule(gen uint64) {
	t.handle = t.cfg.Ticks.Schedule(func() {
		if gen != t.gen || t.state != StateRunning {
			return
		}
		t.publish(gen)
		// publish may have stopped or replaced this subscription
		if gen == t.gen && t.state == StateRunning {
			t.schedule(gen)
		}
	})
}

func (t *Tracker) publish(gen uint64) {
	if gen != t.gen || t.cfg.Publish == nil {
		return
	}
	frame := t.Frame()
	t.frames++
	t.cfg.Publish(frame)
}
