package system

import (
	"slices"

	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
	"github.com/milk9111/traceable/logger"
	"github.com/milk9111/traceable/rationale"
	"github.com/milk9111/traceable/studio"
	"honnef.co/go/curve"
)

// SourceOrder lists asset ids in library order, newest first.
type SourceOrder interface {
	IDs() []string
}

// RationaleSystem drives the connector tracker from the board: asset
// entities are its sources, the studio viewport its container and the
// studio selection its target. Without a selection connectors aim at the
// centre of the studio window.
type RationaleSystem struct {
	layout     *Layout
	view       *studio.View
	order      SourceOrder
	ticker     *rationale.FrameTicker
	tracker    *rationale.Tracker
	reconciler *rationale.Reconciler

	world   *ecs.World
	visible bool
	shown   bool
	sources []rationale.Source
}

func NewRationaleSystem(layout *Layout, view *studio.View, order SourceOrder, builder rationale.Builder) *RationaleSystem {
	s := &RationaleSystem{
		layout:     layout,
		view:       view,
		order:      order,
		ticker:     rationale.NewFrameTicker(),
		reconciler: rationale.NewReconciler(),
	}
	s.tracker = rationale.NewTracker(rationale.Config{
		Builder:   builder,
		Ticks:     s.ticker,
		Rects:     rationale.RectProviderFunc(s.rect),
		Projector: view,
		Container: rationale.ContainerProviderFunc(s.container),
		Window:    rationale.ContainerProviderFunc(s.window),
		Fallback:  curve.Pt(layout.Width/2, layout.Height/2),
		Publish: func(d []rationale.Descriptor) {
			s.reconciler.Reconcile(d)
		},
	})
	return s
}

// SetVisible requests the connectors on or off. It takes effect on the next
// update.
func (s *RationaleSystem) SetVisible(visible bool) {
	s.visible = visible
}

func (s *RationaleSystem) Visible() bool {
	return s.visible
}

// SetBuilder swaps the connector style used from the next frame on.
func (s *RationaleSystem) SetBuilder(b rationale.Builder) {
	s.tracker.SetBuilder(b)
}

// Slots returns the connectors of the last published frame.
func (s *RationaleSystem) Slots() []rationale.Slot {
	if !s.shown {
		return nil
	}
	return s.reconciler.Slots()
}

func (s *RationaleSystem) State() rationale.State {
	return s.tracker.State()
}

// Close stops tracking for good.
func (s *RationaleSystem) Close() {
	s.tracker.Close()
	s.reconciler.Reset()
	s.shown = false
}

func (s *RationaleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	s.world = w
	published := s.tracker.Frames()

	if next := s.collect(w); !slices.Equal(next, s.sources) {
		s.sources = next
		s.tracker.Watch(next)
	}
	if s.view != nil && s.view.Scene != nil {
		s.tracker.SetTarget(rationale.TrackedTarget(s.view.Scene.SelectedID()))
	}

	if s.visible != s.shown {
		s.shown = s.visible
		if !s.visible {
			s.reconciler.Reset()
		}
		s.tracker.SetVisible(s.visible)
		w.Events().Push(ecs.Event{Type: ecs.EventRationaleShown, Data: s.visible})
		logger.Debug("rationale visibility", "visible", s.visible, "sources", len(s.sources))
		return
	}
	// a resubscribe above already published this frame
	if s.tracker.Frames() != published {
		return
	}
	s.ticker.Tick()
}

func (s *RationaleSystem) collect(w *ecs.World) []rationale.Source {
	var ids []string
	if s.order != nil {
		ids = s.order.IDs()
	}
	out := make([]rationale.Source, 0, len(ids))
	for _, id := range ids {
		e, ok := w.Lookup(id)
		if !ok {
			continue
		}
		a, ok := ecs.Get(w, e, component.AssetComponent)
		if !ok {
			continue
		}
		out = append(out, rationale.Source{ID: id, Category: a.Category, Name: a.Name})
	}
	return out
}

func (s *RationaleSystem) rect(id string) (curve.Rect, bool) {
	if s.world == nil {
		return curve.Rect{}, false
	}
	e, ok := s.world.Lookup(id)
	if !ok {
		return curve.Rect{}, false
	}
	return EntityRect(s.world, e)
}

func (s *RationaleSystem) container() (curve.Rect, bool) {
	if s.world == nil {
		return curve.Rect{}, false
	}
	return s.layout.Viewport(s.world)
}

func (s *RationaleSystem) window() (curve.Rect, bool) {
	if s.world == nil {
		return curve.Rect{}, false
	}
	e, ok := ecs.First(s.world, component.StudioComponent)
	if !ok {
		return curve.Rect{}, false
	}
	return EntityRect(s.world, e)
}
