package rationale

import (
	"testing"

	"honnef.co/go/curve"
)

type publishSpy struct {
	calls [][]Descriptor
}

func (s *publishSpy) publish(d []Descriptor) {
	s.calls = append(s.calls, d)
}

func (s *publishSpy) last() []Descriptor {
	if len(s.calls) == 0 {
		return nil
	}
	return s.calls[len(s.calls)-1]
}

type rectMap map[string]curve.Rect

func (m rectMap) Rect(id string) (curve.Rect, bool) {
	r, ok := m[id]
	return r, ok
}

func studioAt(left, top float64) ContainerProviderFunc {
	return func() (curve.Rect, bool) { return RectLTWH(left, top, 600, 450), true }
}

func newTestTracker(rects RectProvider, container ContainerProvider, proj Projector) (*Tracker, *FrameTicker, *publishSpy) {
	ticker := NewFrameTicker()
	spy := &publishSpy{}
	tr := NewTracker(Config{
		Builder:   NewBuilder(),
		Ticks:     ticker,
		Rects:     rects,
		Projector: proj,
		Container: container,
		Fallback:  curve.Pt(-1, -1),
		Publish:   spy.publish,
	})
	return tr, ticker, spy
}

func TestTrackerLifecycle(t *testing.T) {
	rects := rectMap{"a": RectLTWH(0, 0, 100, 100)}
	tr, ticker, spy := newTestTracker(rects, studioAt(100, 75), nil)
	tr.Watch([]Source{{ID: "a", Category: CategorySketches, Name: "a.png"}})

	if tr.State() != StateIdle {
		t.Fatalf("new tracker should be idle")
	}
	ticker.Tick()
	if len(spy.calls) != 0 {
		t.Fatalf("idle tracker published %d times", len(spy.calls))
	}

	tr.SetVisible(true)
	if tr.State() != StateRunning {
		t.Fatalf("expected running after becoming visible")
	}
	if len(spy.calls) != 1 {
		t.Fatalf("activation should publish immediately, got %d", len(spy.calls))
	}

	for i := 0; i < 3; i++ {
		ticker.Tick()
	}
	if len(spy.calls) != 4 {
		t.Fatalf("expected one publish per tick, got %d", len(spy.calls))
	}

	tr.SetVisible(false)
	if tr.State() != StateIdle {
		t.Fatalf("expected idle after hiding")
	}
	if ticker.Pending() != 0 {
		t.Fatalf("stop must release the scheduled tick, %d pending", ticker.Pending())
	}
	before := len(spy.calls)
	for i := 0; i < 5; i++ {
		ticker.Tick()
	}
	if len(spy.calls) != before {
		t.Fatalf("published %d times after stop", len(spy.calls)-before)
	}
}

func TestTrackerCloseIsFinal(t *testing.T) {
	tr, ticker, spy := newTestTracker(rectMap{}, studioAt(0, 0), nil)
	tr.SetVisible(true)
	tr.Close()
	tr.SetVisible(true)
	ticker.Tick()

	if len(spy.calls) != 1 {
		t.Fatalf("expected only the activation publish, got %d", len(spy.calls))
	}
	if tr.State() != StateIdle || ticker.Pending() != 0 {
		t.Fatalf("closed tracker should be idle with nothing scheduled")
	}
}

func TestTrackerStopFromPublisher(t *testing.T) {
	ticker := NewFrameTicker()
	var tr *Tracker
	calls := 0
	tr = NewTracker(Config{
		Ticks:     ticker,
		Rects:     rectMap{},
		Container: studioAt(0, 0),
		Publish: func([]Descriptor) {
			calls++
			if calls == 2 {
				tr.SetVisible(false)
			}
		},
	})

	tr.SetVisible(true)
	ticker.Tick()
	ticker.Tick()
	ticker.Tick()

	if calls != 2 {
		t.Fatalf("expected 2 publishes, got %d", calls)
	}
	if ticker.Pending() != 0 {
		t.Fatalf("nothing should stay scheduled, got %d", ticker.Pending())
	}
}

func TestTrackerOmitsUnresolvableSources(t *testing.T) {
	rects := rectMap{
		"a": RectLTWH(0, 0, 100, 100),
		"c": RectLTWH(300, 0, 100, 100),
	}
	tr, _, spy := newTestTracker(rects, studioAt(100, 75), nil)
	tr.Watch([]Source{
		{ID: "a", Category: CategoryUserResearch, Name: "a"},
		{ID: "b", Category: CategorySketches, Name: "b"},
		{ID: "c", Category: "Unsorted", Name: "c"},
	})
	tr.SetVisible(true)

	got := spy.last()
	if len(got) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(got))
	}
	if got[0].SourceID != "a" || got[1].SourceID != "c" {
		t.Fatalf("unexpected order: %s, %s", got[0].SourceID, got[1].SourceID)
	}
	if got[1].Color != NeutralColor {
		t.Fatalf("unknown category should be neutral")
	}
}

func TestTrackerTargets(t *testing.T) {
	rects := rectMap{"a": RectLTWH(0, 0, 100, 100)}
	project := ProjectorFunc(func(id string) (curve.Point, bool) {
		if id == "cube" {
			return curve.Pt(10, 20), true
		}
		return curve.Point{}, false
	})

	cases := []struct {
		name      string
		container ContainerProvider
		target    Target
		want      curve.Point
	}{
		{"fixed_uses_container_centre", studioAt(100, 75), FixedTarget(), curve.Pt(400, 300)},
		{"tracked_offsets_by_container", studioAt(100, 75), TrackedTarget("cube"), curve.Pt(110, 95)},
		{"tracked_missing_object_falls_back", studioAt(100, 75), TrackedTarget("gone"), curve.Pt(400, 300)},
		{"empty_object_is_fixed", studioAt(100, 75), TrackedTarget(""), curve.Pt(400, 300)},
		{"no_container_uses_fallback", ContainerProviderFunc(func() (curve.Rect, bool) { return curve.Rect{}, false }), TrackedTarget("cube"), curve.Pt(-1, -1)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr, _, spy := newTestTracker(rects, c.container, project)
			tr.Watch([]Source{{ID: "a", Category: CategorySketches, Name: "a"}})
			tr.SetTarget(c.target)
			tr.SetVisible(true)

			got := spy.last()
			if len(got) != 1 {
				t.Fatalf("expected 1 descriptor, got %d", len(got))
			}
			if got[0].End() != c.want {
				t.Fatalf("end = %v, want %v", got[0].End(), c.want)
			}
		})
	}
}

func TestTrackerEmptyInputs(t *testing.T) {
	t.Run("no_sources", func(t *testing.T) {
		tr, _, spy := newTestTracker(rectMap{}, studioAt(100, 75), nil)
		tr.SetVisible(true)
		if got := spy.last(); got == nil || len(got) != 0 {
			t.Fatalf("expected an empty, non-nil list, got %v", got)
		}
		if p := tr.ResolveTarget(); p != curve.Pt(400, 300) {
			t.Fatalf("target = %v, want container centre", p)
		}
	})

	t.Run("one_unresolvable_source", func(t *testing.T) {
		tr, _, spy := newTestTracker(rectMap{}, studioAt(100, 75), nil)
		tr.Watch([]Source{{ID: "ghost", Category: CategorySketches, Name: "ghost"}})
		tr.SetVisible(true)
		if got := spy.last(); len(got) != 0 {
			t.Fatalf("expected empty list, got %d", len(got))
		}
	})

	t.Run("nil_providers", func(t *testing.T) {
		tr, _, spy := newTestTracker(nil, nil, nil)
		tr.Watch([]Source{{ID: "a"}})
		tr.SetVisible(true)
		if got := spy.last(); len(got) != 0 {
			t.Fatalf("expected empty list, got %d", len(got))
		}
	})
}

func TestTrackerResubscribesOnWatchChanges(t *testing.T) {
	rects := rectMap{
		"a": RectLTWH(0, 0, 10, 10),
		"b": RectLTWH(20, 0, 10, 10),
	}
	tr, ticker, spy := newTestTracker(rects, studioAt(0, 0), nil)
	tr.Watch([]Source{{ID: "a"}})
	tr.SetVisible(true)

	tr.Watch([]Source{{ID: "a"}, {ID: "b"}})
	if len(spy.calls) != 2 || len(spy.last()) != 2 {
		t.Fatalf("new source list should publish immediately, calls=%d", len(spy.calls))
	}
	if ticker.Pending() != 1 {
		t.Fatalf("expected exactly one scheduled tick, got %d", ticker.Pending())
	}

	tr.SetTarget(FixedTarget())
	if len(spy.calls) != 2 {
		t.Fatalf("unchanged target must not resubscribe")
	}

	tr.SetTarget(TrackedTarget("cube"))
	if len(spy.calls) != 3 || ticker.Pending() != 1 {
		t.Fatalf("target switch should resubscribe once, calls=%d pending=%d", len(spy.calls), ticker.Pending())
	}

	ticker.Tick()
	if len(spy.calls) != 4 {
		t.Fatalf("expected a single publish per tick after resubscribing, got %d", len(spy.calls))
	}
}

func TestTrackerPullsFreshRects(t *testing.T) {
	rects := rectMap{"a": RectLTWH(0, 0, 100, 100)}
	tr, ticker, spy := newTestTracker(rects, studioAt(0, 0), nil)
	tr.Watch([]Source{{ID: "a"}})
	tr.SetVisible(true)

	rects["a"] = RectLTWH(200, 0, 100, 100)
	ticker.Tick()

	if got := spy.last()[0].Start(); got != curve.Pt(250, 50) {
		t.Fatalf("start = %v, want the moved centre", got)
	}
}

func TestTrackerSetBuilder(t *testing.T) {
	rects := rectMap{"a": RectLTWH(0, 0, 10, 10)}
	tr, ticker, spy := newTestTracker(rects, studioAt(0, 0), nil)
	tr.Watch([]Source{{ID: "a", Name: "a.png"}})
	tr.SetVisible(true)

	b := NewBuilder()
	b.LabelPrefix = "Because: "
	tr.SetBuilder(b)
	ticker.Tick()

	if got := spy.last()[0].Label; got != "Because: a.png" {
		t.Fatalf("label = %q", got)
	}
}

func TestTrackerWindowCentre(t *testing.T) {
	rects := rectMap{"a": RectLTWH(0, 0, 100, 100)}
	// the viewport is the window minus a 48px header
	window := ContainerProviderFunc(func() (curve.Rect, bool) { return RectLTWH(100, 75, 600, 450), true })
	viewport := ContainerProviderFunc(func() (curve.Rect, bool) { return RectLTWH(100, 123, 600, 402), true })
	project := ProjectorFunc(func(id string) (curve.Point, bool) {
		if id == "cube" {
			return curve.Pt(10, 20), true
		}
		return curve.Point{}, false
	})

	cases := []struct {
		name   string
		window ContainerProvider
		target Target
		want   curve.Point
	}{
		{"fixed_uses_window_centre", window, FixedTarget(), curve.Pt(400, 300)},
		{"missing_projection_uses_window_centre", window, TrackedTarget("gone"), curve.Pt(400, 300)},
		{"tracked_stays_relative_to_viewport", window, TrackedTarget("cube"), curve.Pt(110, 143)},
		{"unresolved_window_uses_viewport", ContainerProviderFunc(func() (curve.Rect, bool) { return curve.Rect{}, false }), FixedTarget(), curve.Pt(400, 324)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ticker := NewFrameTicker()
			spy := &publishSpy{}
			tr := NewTracker(Config{
				Ticks:     ticker,
				Rects:     rects,
				Projector: project,
				Container: viewport,
				Window:    c.window,
				Publish:   spy.publish,
			})
			tr.Watch([]Source{{ID: "a"}})
			tr.SetTarget(c.target)
			tr.SetVisible(true)
			if got := spy.last()[0].End(); got != c.want {
				t.Fatalf("end = %v, want %v", got, c.want)
			}
		})
	}
}
