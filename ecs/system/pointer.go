package system

import (
	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
	"github.com/milk9111/traceable/logger"
	"honnef.co/go/curve"
)

// PointerSystem owns left-button interaction with the board: picking,
// dragging, raising, closing notes and creating them on double click.
type PointerSystem struct {
	layout   *Layout
	pick     *ecs.PickWorld
	newID    func() string
	dragging ecs.Entity
	// selected is the last asset card clicked; Delete removes it.
	selected ecs.Entity
}

func NewPointerSystem(layout *Layout, pick *ecs.PickWorld, newID func() string) *PointerSystem {
	return &PointerSystem{layout: layout, pick: pick, newID: newID}
}

// Dragging returns the entity under an active drag, if any.
func (p *PointerSystem) Dragging() (ecs.Entity, bool) {
	return p.dragging, p.dragging.Valid()
}

func (p *PointerSystem) Update(w *ecs.World) {
	if w == nil || p.layout == nil {
		return
	}
	in := InputOf(w)
	p.pick.Sync(w)
	p.hover(w, in)

	if p.dragging.Valid() {
		p.move(w, in)
		if in.JustReleased || !in.Pressed {
			p.release(w)
		}
	}

	if in.Delete && !ecs.Has(w, p.selected, component.FocusedComponent) {
		p.removeAsset(w)
	}

	if !in.JustPressed || in.OverUI {
		return
	}

	e, ok := p.pick.Pick(w, in.X, in.Y)
	p.selected = 0
	if !ok {
		Focus(w, 0)
		if in.DoubleClick && p.newID != nil {
			id := p.newID()
			SpawnNote(w, p.layout, id, in.X, in.Y)
			logger.Debug("note created", "note", id)
		}
		return
	}

	r, _ := EntityRect(w, e)
	if ecs.Has(w, e, component.StudioComponent) {
		if in.Y > r.Y0+p.layout.StudioHeader {
			// viewport presses belong to StudioSystem
			return
		}
		if in.DoubleClick {
			p.release(w)
			maximized := ToggleMaximize(w, p.layout)
			logger.Debug("studio resized", "maximized", maximized)
			return
		}
		p.start(w, e, in)
		return
	}

	if ecs.Has(w, e, component.NoteComponent) && contains(noteCloseBox(r), in.X, in.Y) {
		p.closeNote(w, e)
		return
	}

	Raise(w, e)
	Focus(w, e)
	if ecs.Has(w, e, component.AssetComponent) {
		p.selected = e
	}
	p.start(w, e, in)
}

func (p *PointerSystem) start(w *ecs.World, e ecs.Entity, in *component.Input) {
	d, ok := ecs.Get(w, e, component.DraggableComponent)
	if !ok || d.Locked {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return
	}
	d.Session.Start(curve.Pt(in.X, in.Y), curve.Pt(t.X, t.Y))
	p.dragging = e
	id, _ := w.IDOf(e)
	w.Events().Push(ecs.Event{Type: ecs.EventDragStarted, Data: ecs.EntityEvent{Entity: e, ID: id}})
}

func (p *PointerSystem) move(w *ecs.World, in *component.Input) {
	d, ok := ecs.Get(w, p.dragging, component.DraggableComponent)
	if !ok {
		p.dragging = 0
		return
	}
	pos, ok := d.Session.Move(curve.Pt(in.X, in.Y))
	if !ok {
		return
	}
	if t, ok := ecs.Get(w, p.dragging, component.TransformComponent); ok {
		t.X, t.Y = pos.X, pos.Y
	}
}

func (p *PointerSystem) release(w *ecs.World) {
	e := p.dragging
	p.dragging = 0
	if !e.Valid() {
		return
	}
	d, ok := ecs.Get(w, e, component.DraggableComponent)
	if !ok || !d.Session.Release() {
		return
	}
	id, _ := w.IDOf(e)
	w.Events().Push(ecs.Event{Type: ecs.EventDragReleased, Data: ecs.EntityEvent{Entity: e, ID: id}})
}

func (p *PointerSystem) closeNote(w *ecs.World, e ecs.Entity) {
	if p.dragging == e {
		p.dragging = 0
	}
	id, _ := w.IDOf(e)
	ecs.DestroyEntity(w, e)
	w.Events().Push(ecs.Event{Type: ecs.EventNoteClosed, Data: ecs.EntityEvent{Entity: e, ID: id}})
	logger.Debug("note closed", "note", id)
}

func (p *PointerSystem) removeAsset(w *ecs.World) {
	e := p.selected
	p.selected = 0
	if !ecs.Has(w, e, component.AssetComponent) {
		return
	}
	if p.dragging == e {
		p.dragging = 0
	}
	id, _ := w.IDOf(e)
	ecs.DestroyEntity(w, e)
	w.Events().Push(ecs.Event{Type: ecs.EventAssetRemoved, Data: ecs.EntityEvent{Entity: e, ID: id}})
	logger.Info("asset removed", "asset", id)
}

// hover tags the entity under the pointer. Nothing is hovered while the
// pointer is over a widget.
func (p *PointerSystem) hover(w *ecs.World, in *component.Input) {
	var under ecs.Entity
	if !in.OverUI {
		under, _ = p.pick.Pick(w, in.X, in.Y)
	}
	var stale []ecs.Entity
	ecs.ForEach(w, component.HoveredComponent, func(e ecs.Entity, _ *component.Hovered) {
		if e != under {
			stale = append(stale, e)
		}
	})
	for _, e := range stale {
		ecs.Remove(w, e, component.HoveredComponent)
	}
	if under.Valid() && !ecs.Has(w, under, component.HoveredComponent) {
		_ = ecs.Add(w, under, component.HoveredComponent, &component.Hovered{})
	}
}
