package system

import (
	"math"

	"github.com/milk9111/traceable/ecs"
	"github.com/milk9111/traceable/ecs/component"
	"github.com/milk9111/traceable/logger"
	"github.com/milk9111/traceable/studio"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	translateSpeed = 0.002
	rotateSpeed    = 0.01
	scaleSpeed     = 0.005
	dragThreshold  = 3
)

type studioGesture int

const (
	gestureNone studioGesture = iota
	gestureOrbit
	gestureEdit
)

// StudioSystem handles pointer input inside the studio viewport: selecting
// objects, orbiting the camera, editing the selection and zooming.
type StudioSystem struct {
	layout *Layout
	view   *studio.View

	gesture      studioGesture
	lastX, lastY float64
	pressX       float64
	pressY       float64
	moved        bool
}

func NewStudioSystem(layout *Layout, view *studio.View) *StudioSystem {
	return &StudioSystem{layout: layout, view: view}
}

func (s *StudioSystem) Update(w *ecs.World) {
	if w == nil || s.view == nil || s.layout == nil {
		return
	}
	s.fit(w)
	vp, ok := s.layout.Viewport(w)
	if !ok {
		return
	}
	in := InputOf(w)
	inside := !in.OverUI && contains(vp, in.X, in.Y)

	if inside && in.Wheel != 0 {
		s.view.Camera.Zoom(in.Wheel)
	}

	if in.JustPressed && inside {
		lx, ly := in.X-vp.X0, in.Y-vp.Y0
		s.pressX, s.pressY = in.X, in.Y
		s.lastX, s.lastY = in.X, in.Y
		s.moved = false
		s.gesture = gestureOrbit
		if id, hit := s.view.PickAt(lx, ly); hit {
			s.selectObject(w, id)
			s.gesture = gestureEdit
		}
		return
	}

	if s.gesture == gestureNone {
		return
	}
	if !in.Pressed || in.JustReleased {
		if s.gesture == gestureOrbit && !s.moved {
			s.selectObject(w, "")
		}
		s.gesture = gestureNone
		return
	}

	dx, dy := in.X-s.lastX, in.Y-s.lastY
	s.lastX, s.lastY = in.X, in.Y
	if math.Hypot(in.X-s.pressX, in.Y-s.pressY) > dragThreshold {
		s.moved = true
	}
	if dx == 0 && dy == 0 {
		return
	}
	switch s.gesture {
	case gestureOrbit:
		s.view.Camera.Orbit(dx, dy)
	case gestureEdit:
		s.edit(dx, dy)
	}
}

func (s *StudioSystem) edit(dx, dy float64) {
	sc := s.view.Scene
	switch sc.Mode() {
	case studio.ModeTranslate:
		right, forward := s.view.Camera.GroundAxes()
		k := s.view.Camera.Distance * translateSpeed
		delta := r3.Add(r3.Scale(dx*k, right), r3.Scale(-dy*k, forward))
		sc.Nudge(delta)
	case studio.ModeRotate:
		sc.Nudge(r3.Vec{Y: dx * rotateSpeed, X: dy * rotateSpeed})
	case studio.ModeScale:
		d := -dy * scaleSpeed
		sc.Nudge(r3.Vec{X: d, Y: d, Z: d})
	}
}

func (s *StudioSystem) selectObject(w *ecs.World, id string) {
	if s.view.Scene.SelectedID() == id {
		return
	}
	if !s.view.Scene.Select(id) {
		return
	}
	w.Events().Push(ecs.Event{Type: ecs.EventSelection, Data: ecs.EntityEvent{ID: id}})
	logger.Debug("studio selection", "object", id)
}

// fit keeps a maximized studio covering the window and the view sized to
// the viewport.
func (s *StudioSystem) fit(w *ecs.World) {
	e, ok := ecs.First(w, component.StudioComponent)
	if !ok {
		return
	}
	st, _ := ecs.Get(w, e, component.StudioComponent)
	t, tok := ecs.Get(w, e, component.TransformComponent)
	b, bok := ecs.Get(w, e, component.BoundsComponent)
	if !tok || !bok {
		return
	}
	if st.Maximized {
		fitMaximized(t, b, s.layout)
	}
	vp, _ := s.layout.Viewport(w)
	s.view.Resize(vp.Width(), vp.Height())
}
