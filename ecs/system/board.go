package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/traceable/config"
	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
	"github.com/milk9111/traceable/ingest"
	"honnef.co/go/curve"
)

// StudioLayer keeps the studio window above cards and notes however often
// they are raised.
const StudioLayer = math.MaxInt32

const (
	noteHeaderHeight = 24
	closeBoxSize     = 16
)

// Layout is the board geometry the systems share. Width and Height follow
// the window.
type Layout struct {
	Width, Height  float64
	NoteWidth      float64
	NoteHeight     float64
	CardWidth      float64
	TextCardHeight float64
	StudioW        float64
	StudioH        float64
	StudioHeader   float64
	StudioInset    float64
}

func NewLayout(cfg config.Config) *Layout {
	return &Layout{
		Width:          float64(cfg.Window.Width),
		Height:         float64(cfg.Window.Height),
		NoteWidth:      cfg.Board.NoteWidth,
		NoteHeight:     cfg.Board.NoteHeight,
		CardWidth:      cfg.Board.CardWidth,
		TextCardHeight: cfg.Board.TextCardHeight,
		StudioW:        cfg.Studio.Width,
		StudioH:        cfg.Studio.Height,
		StudioHeader:   cfg.Studio.HeaderHeight,
		StudioInset:    cfg.Studio.MaximizedInset,
	}
}

// EntityRect is the screen rect of an entity with a Transform and Bounds.
func EntityRect(w *ecs.World, e ecs.Entity) (curve.Rect, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return curve.Rect{}, false
	}
	b, ok := ecs.Get(w, e, component.BoundsComponent)
	if !ok {
		return curve.Rect{}, false
	}
	return curve.Rect{X0: t.X, Y0: t.Y, X1: t.X + b.W, Y1: t.Y + b.H}, true
}

func contains(r curve.Rect, x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Viewport is the studio's 3D area: the window minus its header.
func (l *Layout) Viewport(w *ecs.World) (curve.Rect, bool) {
	e, ok := ecs.First(w, component.StudioComponent)
	if !ok {
		return curve.Rect{}, false
	}
	r, ok := EntityRect(w, e)
	if !ok {
		return curve.Rect{}, false
	}
	r.Y0 = math.Min(r.Y1, r.Y0+l.StudioHeader)
	return r, true
}

// noteCloseBox is the delete button in a note's header.
func noteCloseBox(r curve.Rect) curve.Rect {
	pad := (noteHeaderHeight - closeBoxSize) / 2.0
	return curve.Rect{
		X0: r.X1 - pad - closeBoxSize,
		Y0: r.Y0 + pad,
		X1: r.X1 - pad,
		Y1: r.Y0 + pad + closeBoxSize,
	}
}

// Raise puts e above every other card and note.
func Raise(w *ecs.World, e ecs.Entity) {
	layer, ok := ecs.Get(w, e, component.RenderLayerComponent)
	if !ok || layer.Index == StudioLayer {
		return
	}
	top := 0
	ecs.ForEach(w, component.RenderLayerComponent, func(other ecs.Entity, l *component.RenderLayer) {
		if other != e && l.Index != StudioLayer && l.Index > top {
			top = l.Index
		}
	})
	if layer.Index <= top {
		layer.Index = top + 1
	}
}

// SpawnStudio creates the studio window centred on the canvas.
func SpawnStudio(w *ecs.World, l *Layout) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = w.Bind(e, "studio")
	_ = ecs.Add(w, e, component.StudioComponent, &component.Studio{})
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{X: l.Width/2 - l.StudioW/2, Y: l.Height/2 - l.StudioH/2})
	_ = ecs.Add(w, e, component.BoundsComponent, &component.Bounds{W: l.StudioW, H: l.StudioH})
	_ = ecs.Add(w, e, component.DraggableComponent, &component.Draggable{})
	_ = ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{Index: StudioLayer})
	return e
}

// SpawnNote creates an empty sticky note with its top-left at (x, y) and
// gives it keyboard focus.
func SpawnNote(w *ecs.World, l *Layout, id string, x, y float64) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = w.Bind(e, id)
	_ = ecs.Add(w, e, component.NoteComponent, &component.Note{})
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y})
	_ = ecs.Add(w, e, component.BoundsComponent, &component.Bounds{W: l.NoteWidth, H: l.NoteHeight})
	_ = ecs.Add(w, e, component.DraggableComponent, &component.Draggable{})
	_ = ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{})
	Raise(w, e)
	Focus(w, e)
	w.Events().Push(ecs.Event{Type: ecs.EventNoteCreated, Data: ecs.EntityEvent{Entity: e, ID: id}})
	return e
}

// Focus gives e keyboard focus; a zero entity clears it.
func Focus(w *ecs.World, e ecs.Entity) {
	var focused []ecs.Entity
	ecs.ForEach(w, component.FocusedComponent, func(other ecs.Entity, _ *component.Focused) {
		focused = append(focused, other)
	})
	for _, other := range focused {
		if other != e {
			ecs.Remove(w, other, component.FocusedComponent)
		}
	}
	if e.Valid() && ecs.Has(w, e, component.NoteComponent) {
		_ = ecs.Add(w, e, component.FocusedComponent, &component.Focused{})
	}
}

// ToggleMaximize flips the studio between its floating rect and the
// full-canvas rect. A maximized studio cannot be dragged.
func ToggleMaximize(w *ecs.World, l *Layout) bool {
	e, ok := ecs.First(w, component.StudioComponent)
	if !ok {
		return false
	}
	s, _ := ecs.Get(w, e, component.StudioComponent)
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return false
	}
	b, ok := ecs.Get(w, e, component.BoundsComponent)
	if !ok {
		return false
	}

	if s.Maximized {
		t.X, t.Y = s.Restore.X, s.Restore.Y
		b.W, b.H = s.Restore.W, s.Restore.H
		s.Maximized = false
	} else {
		s.Restore.X, s.Restore.Y, s.Restore.W, s.Restore.H = t.X, t.Y, b.W, b.H
		s.Maximized = true
		fitMaximized(t, b, l)
	}
	if d, ok := ecs.Get(w, e, component.DraggableComponent); ok {
		d.Session.Release()
		d.Locked = s.Maximized
	}
	w.Events().Push(ecs.Event{Type: ecs.EventStudioResized, Data: ecs.EntityEvent{Entity: e, ID: "studio"}})
	return s.Maximized
}

func fitMaximized(t *component.Transform, b *component.Bounds, l *Layout) {
	t.X, t.Y = l.StudioInset, l.StudioInset
	b.W = math.Max(0, l.Width-2*l.StudioInset)
	b.H = math.Max(0, l.Height-2*l.StudioInset)
}

const cardCaptionHeight = 28

// SpawnAsset places a processed upload on the board. img may be nil for text
// assets or when no GPU image is available.
func SpawnAsset(w *ecs.World, l *Layout, a ingest.Asset, img *ebiten.Image) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = w.Bind(e, a.ID)

	h := l.TextCardHeight
	if a.Kind == ingest.KindImage && a.Image != nil {
		b := a.Image.Bounds()
		if b.Dx() > 0 {
			h = l.CardWidth*float64(b.Dy())/float64(b.Dx()) + cardCaptionHeight
		}
	}

	kind := component.AssetText
	if a.Kind == ingest.KindImage {
		kind = component.AssetImage
	}
	_ = ecs.Add(w, e, component.AssetComponent, &component.Asset{
		Name:      a.Name,
		Kind:      kind,
		Category:  a.Category,
		Timestamp: a.Timestamp,
		Preview:   a.Preview,
	})
	if img != nil {
		_ = ecs.Add(w, e, component.SpriteComponent, &component.Sprite{Image: img})
	}
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{X: a.Position.X, Y: a.Position.Y})
	_ = ecs.Add(w, e, component.BoundsComponent, &component.Bounds{W: l.CardWidth, H: h})
	_ = ecs.Add(w, e, component.DraggableComponent, &component.Draggable{})
	_ = ecs.Add(w, e, component.RenderLayerComponent, &component.RenderLayer{})
	Raise(w, e)
	w.Events().Push(ecs.Event{Type: ecs.EventAssetAdded, Data: ecs.EntityEvent{Entity: e, ID: a.ID}})
	return e
}
