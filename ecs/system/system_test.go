package system

import (
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/traceable/config"
	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
	"github.com/milk9111/traceable/ingest"
	"github.com/milk9111/traceable/rationale"
	"github.com/milk9111/traceable/studio"
	"honnef.co/go/curve"
)

type board struct {
	w      *ecs.World
	layout *Layout
	ptr    *PointerSystem
	studio ecs.Entity
	ids    int
}

func newBoard(t *testing.T) *board {
	t.Helper()
	b := &board{w: ecs.NewWorld(), layout: NewLayout(config.Default())}
	b.ptr = NewPointerSystem(b.layout, ecs.NewPickWorld(), func() string {
		b.ids++
		return fmt.Sprintf("note-%d", b.ids)
	})
	b.studio = SpawnStudio(b.w, b.layout)
	return b
}

func (b *board) asset(id string, x, y float64) ecs.Entity {
	return SpawnAsset(b.w, b.layout, ingest.Asset{
		ID:        id,
		Name:      id + ".txt",
		Kind:      ingest.KindText,
		Category:  rationale.CategorySketches,
		Timestamp: time.Unix(0, 0),
		Position:  curve.Pt(x, y),
	}, nil)
}

// press runs one pointer frame with the button going down at (x, y).
func (b *board) press(x, y float64, double bool) {
	in := InputOf(b.w)
	*in = component.Input{X: x, Y: y, Pressed: true, JustPressed: true, DoubleClick: double}
	b.ptr.Update(b.w)
}

func (b *board) move(x, y float64) {
	in := InputOf(b.w)
	*in = component.Input{X: x, Y: y, Pressed: true}
	b.ptr.Update(b.w)
}

func (b *board) release(x, y float64) {
	in := InputOf(b.w)
	*in = component.Input{X: x, Y: y, JustReleased: true}
	b.ptr.Update(b.w)
}

func TestClickTracker(t *testing.T) {
	cases := []struct {
		name   string
		frames []int
		xs     []float64
		want   []bool
	}{
		{"quick_pair", []int{1, 10}, []float64{0, 2}, []bool{false, true}},
		{"too_slow", []int{1, 30}, []float64{0, 0}, []bool{false, false}},
		{"too_far", []int{1, 5}, []float64{0, 20}, []bool{false, false}},
		{"triple_is_one_double", []int{1, 5, 9}, []float64{0, 0, 0}, []bool{false, true, false}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var ct clickTracker
			for i := range c.frames {
				if got := ct.press(c.frames[i], c.xs[i], 0); got != c.want[i] {
					t.Fatalf("press %d = %v, want %v", i, got, c.want[i])
				}
			}
		})
	}
}

func TestPointerDragsCard(t *testing.T) {
	b := newBoard(t)
	e := b.asset("a", 10, 10)

	b.press(30, 20, false)
	b.move(130, 70)
	b.release(130, 70)
	b.move(500, 500)

	tr, _ := ecs.Get(b.w, e, component.TransformComponent)
	if tr.X != 110 || tr.Y != 60 {
		t.Fatalf("card at (%v, %v), want (110, 60)", tr.X, tr.Y)
	}

	var types []string
	for _, evt := range b.w.Events().Drain() {
		types = append(types, evt.Type)
	}
	want := []string{ecs.EventAssetAdded, ecs.EventDragStarted, ecs.EventDragReleased}
	if strings.Join(types, ",") != strings.Join(want, ",") {
		t.Fatalf("events = %v, want %v", types, want)
	}
}

func TestPointerRaisesClickedCard(t *testing.T) {
	b := newBoard(t)
	back := b.asset("back", 0, 0)
	front := b.asset("front", 50, 50)

	b.press(60, 60, false)
	b.release(60, 60)
	if got, _ := b.ptr.pick.Pick(b.w, 60, 60); got != front {
		t.Fatalf("front card should be picked first")
	}

	b.press(10, 10, false)
	b.release(10, 10)
	bl, _ := ecs.Get(b.w, back, component.RenderLayerComponent)
	fl, _ := ecs.Get(b.w, front, component.RenderLayerComponent)
	if bl.Index <= fl.Index {
		t.Fatalf("clicked card should be raised: back=%d front=%d", bl.Index, fl.Index)
	}
	if got, _ := b.ptr.pick.Pick(b.w, 60, 60); got != back {
		t.Fatalf("raised card should now be on top")
	}
}

func TestDoubleClickCreatesNote(t *testing.T) {
	b := newBoard(t)

	b.press(40, 50, true)
	e, ok := b.w.Lookup("note-1")
	if !ok {
		t.Fatalf("expected a note")
	}
	tr, _ := ecs.Get(b.w, e, component.TransformComponent)
	if tr.X != 40 || tr.Y != 50 {
		t.Fatalf("note at (%v, %v), want the cursor", tr.X, tr.Y)
	}
	if !ecs.Has(b.w, e, component.FocusedComponent) {
		t.Fatalf("new note should take focus")
	}

	b.release(40, 50)
	b.press(40, 50, false)
	if ecs.Count(b.w, component.NoteComponent) != 1 {
		t.Fatalf("single click on a note must not create another")
	}
}

func TestNoteCloseBox(t *testing.T) {
	b := newBoard(t)
	e := SpawnNote(b.w, b.layout, "n", 0, 0)
	r, _ := EntityRect(b.w, e)
	box := noteCloseBox(r)

	b.press(box.Center().X, box.Center().Y, false)
	if ecs.IsAlive(b.w, e) {
		t.Fatalf("close box should delete the note")
	}
	if _, ok := b.w.Lookup("n"); ok {
		t.Fatalf("deleted note id still bound")
	}
}

func TestStudioHeaderMaximize(t *testing.T) {
	b := newBoard(t)
	r, _ := EntityRect(b.w, b.studio)
	hx, hy := r.X0+100, r.Y0+10

	b.press(hx, hy, false)
	b.move(hx+50, hy+40)
	b.release(hx+50, hy+40)
	moved, _ := EntityRect(b.w, b.studio)
	if moved.X0 != r.X0+50 || moved.Y0 != r.Y0+40 {
		t.Fatalf("studio header should drag the window, got %v", moved)
	}

	b.press(moved.X0+100, moved.Y0+10, true)
	full, _ := EntityRect(b.w, b.studio)
	want := curve.Rect{X0: 16, Y0: 16, X1: 1440 - 16, Y1: 900 - 16}
	if full != want {
		t.Fatalf("maximized rect = %v, want %v", full, want)
	}
	b.release(0, 0)

	b.press(200, 20, false)
	b.move(400, 300)
	if got, _ := EntityRect(b.w, b.studio); got != want {
		t.Fatalf("maximized studio must not drag, got %v", got)
	}
	b.release(400, 300)

	if ToggleMaximize(b.w, b.layout) {
		t.Fatalf("second toggle should restore")
	}
	if got, _ := EntityRect(b.w, b.studio); got != moved {
		t.Fatalf("restored rect = %v, want %v", got, moved)
	}
}

func TestViewportPressLeavesStudio(t *testing.T) {
	b := newBoard(t)
	before, _ := EntityRect(b.w, b.studio)
	b.press(before.Center().X, before.Center().Y, false)
	b.move(before.Center().X+80, before.Center().Y)
	if got, _ := EntityRect(b.w, b.studio); got != before {
		t.Fatalf("viewport drag moved the window to %v", got)
	}
	if _, dragging := b.ptr.Dragging(); dragging {
		t.Fatalf("viewport press should not start a window drag")
	}
}

func TestDeleteRemovesSelectedAsset(t *testing.T) {
	b := newBoard(t)
	e := b.asset("a", 0, 0)
	b.press(10, 10, false)
	b.release(10, 10)

	in := InputOf(b.w)
	*in = component.Input{Delete: true}
	b.ptr.Update(b.w)

	if ecs.IsAlive(b.w, e) {
		t.Fatalf("Delete should remove the selected card")
	}
	evts := b.w.Events().Drain()
	last := evts[len(evts)-1]
	if last.Type != ecs.EventAssetRemoved || last.Data.(ecs.EntityEvent).ID != "a" {
		t.Fatalf("unexpected last event %+v", last)
	}
}

func TestNoteTyping(t *testing.T) {
	w := ecs.NewWorld()
	layout := NewLayout(config.Default())
	e := SpawnNote(w, layout, "n", 0, 0)
	notes := NewNoteSystem()

	steps := []struct {
		in   component.Input
		want string
	}{
		{component.Input{Runes: []rune("héllo")}, "héllo"},
		{component.Input{Backspace: true}, "héll"},
		{component.Input{Enter: true, Runes: []rune("x")}, "héll\nx"},
		{component.Input{Runes: []rune{'\t', 0x7f}}, "héll\nx"},
		{component.Input{Escape: true, Runes: []rune("ignored")}, "héll\nx"},
		{component.Input{Runes: []rune("after")}, "héll\nx"},
	}
	for i, s := range steps {
		*InputOf(w) = s.in
		notes.Update(w)
		n, _ := ecs.Get(w, e, component.NoteComponent)
		if n.Text != s.want {
			t.Fatalf("step %d: text = %q, want %q", i, n.Text, s.want)
		}
	}
}

type orderFunc func() []string

func (f orderFunc) IDs() []string { return f() }

func TestRationaleSystem(t *testing.T) {
	b := newBoard(t)
	b.asset("a", 0, 0)
	b.asset("b", 0, 300)
	order := []string{"b", "a", "missing"}

	view := studio.NewView(studio.NewScene(), studio.NewCamera())
	rs := NewRationaleSystem(b.layout, view, orderFunc(func() []string { return order }), rationale.NewBuilder())

	rs.Update(b.w)
	if rs.State() != rationale.StateIdle || rs.Slots() != nil {
		t.Fatalf("hidden system should be idle with no slots")
	}

	vp, _ := b.layout.Viewport(b.w)
	view.Resize(vp.Width(), vp.Height())
	view.Scene.Select(studio.DefaultObjectID)

	rs.SetVisible(true)
	rs.Update(b.w)
	slots := rs.Slots()
	if len(slots) != 2 || slots[0].Descriptor.SourceID != "b" {
		t.Fatalf("unexpected slots %+v", slots)
	}

	proj, _ := view.Project(studio.DefaultObjectID)
	want := curve.Pt(vp.X0+proj.X, vp.Y0+proj.Y)
	if got := slots[0].Descriptor.End(); got != want {
		t.Fatalf("connector ends at %v, want the selected object at %v", got, want)
	}

	view.Scene.Select("")
	rs.Update(b.w)
	win, _ := EntityRect(b.w, b.studio)
	if got := rs.Slots()[0].Descriptor.End(); got != win.Center() {
		t.Fatalf("with no selection connectors end at %v, want window centre %v", got, win.Center())
	}

	e, _ := b.w.Lookup("a")
	ecs.DestroyEntity(b.w, e)
	order = []string{"b"}
	before := rs.tracker.Frames()
	rs.Update(b.w)
	if len(rs.Slots()) != 1 {
		t.Fatalf("removed asset should drop its connector")
	}
	if got := rs.tracker.Frames() - before; got != 1 {
		t.Fatalf("a source change should publish once per frame, got %d", got)
	}
	before = rs.tracker.Frames()
	rs.Update(b.w)
	if got := rs.tracker.Frames() - before; got != 1 {
		t.Fatalf("steady frames should publish once, got %d", got)
	}

	rs.SetVisible(false)
	rs.Update(b.w)
	if rs.State() != rationale.StateIdle || rs.Slots() != nil {
		t.Fatalf("hiding should stop tracking and clear slots")
	}
}

func TestDashSegments(t *testing.T) {
	d := rationale.Build(rationale.RectLTWH(0, 0, 100, 100), curve.Pt(400, 300), rationale.CategorySketches, "x")

	cases := []struct {
		name  string
		dash  []float64
		multi bool
	}{
		{"solid_without_pattern", nil, false},
		{"zero_pattern_is_solid", []float64{0, 0}, false},
		{"dashed", []float64{8, 4}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := ConnectorStyle{Dash: c.dash, Tolerance: 0.25}
			segs := st.DashSegments(nil, d)
			if len(segs) == 0 {
				t.Fatalf("no segments")
			}
			if !c.multi {
				if segs[0].A != d.Start() || segs[len(segs)-1].B != d.End() {
					t.Fatalf("solid path should run start to end, got %v..%v", segs[0].A, segs[len(segs)-1].B)
				}
				for i := 1; i < len(segs); i++ {
					if segs[i].A != segs[i-1].B {
						t.Fatalf("solid path has a gap at %d", i)
					}
				}
				return
			}
			gaps := 0
			for i := 1; i < len(segs); i++ {
				if segs[i].A != segs[i-1].B {
					gaps++
				}
			}
			if gaps < 10 {
				t.Fatalf("dashed path should have many gaps, got %d", gaps)
			}
		})
	}

	buf := make([]Segment, 0, 256)
	again := ConnectorStyle{Dash: []float64{8, 4}}.DashSegments(buf[:0], d)
	if &again[0] != &buf[:1][0] {
		t.Fatalf("segments should reuse the buffer")
	}
}

func TestArrowhead(t *testing.T) {
	d := rationale.Build(rationale.RectLTWH(0, 0, 100, 100), curve.Pt(400, 300), rationale.CategorySketches, "x")
	got := Arrowhead(d)
	want := [3]curve.Point{
		curve.Pt(400, 300),
		curve.Pt(390, 303.5),
		curve.Pt(390, 296.5),
	}
	if got != want {
		t.Fatalf("arrowhead = %v, want %v", got, want)
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"two words here", 9, "two words\nhere"},
		{"abcdefghij", 4, "abcd\nefgh\nij"},
		{"keep\nbreaks", 20, "keep\nbreaks"},
	}
	for _, c := range cases {
		if got := wrap(c.in, c.width); got != c.want {
			t.Fatalf("wrap(%q, %d) = %q, want %q", c.in, c.width, got, c.want)
		}
	}
}

func TestSpawnAssetSizesImageCards(t *testing.T) {
	w := ecs.NewWorld()
	layout := NewLayout(config.Default())
	e := SpawnAsset(w, layout, ingest.Asset{
		ID:    "img",
		Kind:  ingest.KindImage,
		Image: image.NewRGBA(image.Rect(0, 0, 480, 240)),
	}, nil)
	b, _ := ecs.Get(w, e, component.BoundsComponent)
	if b.W != layout.CardWidth || b.H != layout.CardWidth/2+cardCaptionHeight {
		t.Fatalf("bounds = %+v", *b)
	}
}

func TestHoverFollowsPointer(t *testing.T) {
	b := newBoard(t)
	card := b.asset("a", 0, 0)

	b.move(10, 10)
	if !ecs.Has(b.w, card, component.HoveredComponent) {
		t.Fatalf("card under the pointer should be hovered")
	}

	in := InputOf(b.w)
	*in = component.Input{X: 10, Y: 10, OverUI: true}
	b.ptr.Update(b.w)
	if ecs.Has(b.w, card, component.HoveredComponent) {
		t.Fatalf("widgets should take the hover")
	}

	b.move(800, 10)
	if ecs.Count(b.w, component.HoveredComponent) != 0 {
		t.Fatalf("empty canvas should clear the hover")
	}
}

func TestStudioClickSelects(t *testing.T) {
	b := newBoard(t)
	view := studio.NewView(studio.NewScene(), studio.NewCamera())
	ss := NewStudioSystem(b.layout, view)

	frame := func(in component.Input) {
		*InputOf(b.w) = in
		ss.Update(b.w)
	}
	frame(component.Input{})

	vp, _ := b.layout.Viewport(b.w)
	proj, ok := view.Project(studio.DefaultObjectID)
	if !ok {
		t.Fatalf("default object should be in view")
	}
	x, y := vp.X0+proj.X, vp.Y0+proj.Y

	frame(component.Input{X: x, Y: y, Pressed: true, JustPressed: true})
	frame(component.Input{X: x, Y: y, JustReleased: true})
	if got := view.Scene.SelectedID(); got != studio.DefaultObjectID {
		t.Fatalf("selected %q, want the clicked object", got)
	}

	frame(component.Input{X: vp.X0 + 4, Y: vp.Y0 + 4, Pressed: true, JustPressed: true})
	frame(component.Input{X: vp.X0 + 4, Y: vp.Y0 + 4, JustReleased: true})
	if got := view.Scene.SelectedID(); got != "" {
		t.Fatalf("clicking empty space should deselect, still %q", got)
	}

	var ids []string
	for _, evt := range b.w.Events().Drain() {
		if evt.Type == ecs.EventSelection {
			ids = append(ids, evt.Data.(ecs.EntityEvent).ID)
		}
	}
	if strings.Join(ids, ",") != studio.DefaultObjectID+"," {
		t.Fatalf("selection events = %q", ids)
	}
}
