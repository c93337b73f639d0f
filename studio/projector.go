package studio

import (
	"math"

	"honnef.co/go/curve"
)

// View pairs a scene with the camera looking at it and the viewport size in
// pixels. It answers object-to-screen queries for the rationale tracker.
type View struct {
	Scene  *Scene
	Camera *Camera
	W, H   float64
}

// NewView returns a view of scene through cam.
func NewView(scene *Scene, cam *Camera) *View {
	return &View{Scene: scene, Camera: cam}
}

// Resize sets the viewport size.
func (v *View) Resize(w, h float64) {
	if v == nil {
		return
	}
	v.W, v.H = w, h
}

// Project returns the viewport-relative pixel position of an object's
// origin. It reports false for unknown objects and for objects behind the
// camera.
func (v *View) Project(id string) (curve.Point, bool) {
	if v == nil || v.Scene == nil || v.Camera == nil {
		return curve.Point{}, false
	}
	obj, ok := v.Scene.Object(id)
	if !ok {
		return curve.Point{}, false
	}
	x, y, ok := v.Camera.Project(obj.Position, v.W, v.H)
	if !ok {
		return curve.Point{}, false
	}
	return curve.Pt(x, y), true
}

// Outline returns the screen bounding box of an object's wireframe.
func (v *View) Outline(obj *SceneObject) (curve.Rect, bool) {
	if v == nil || v.Camera == nil || obj == nil {
		return curve.Rect{}, false
	}
	r := curve.Rect{X0: math.Inf(1), Y0: math.Inf(1), X1: math.Inf(-1), Y1: math.Inf(-1)}
	seen := false
	for _, e := range Wireframe(obj.Shape) {
		for _, p := range e {
			x, y, ok := v.Camera.Project(obj.World(p), v.W, v.H)
			if !ok {
				continue
			}
			r.X0, r.Y0 = math.Min(r.X0, x), math.Min(r.Y0, y)
			r.X1, r.Y1 = math.Max(r.X1, x), math.Max(r.Y1, y)
			seen = true
		}
	}
	return r, seen
}

// PickAt returns the object nearest the camera whose outline contains the
// viewport point (x, y).
func (v *View) PickAt(x, y float64) (string, bool) {
	if v == nil || v.Scene == nil {
		return "", false
	}
	best := ""
	bestDepth := math.Inf(1)
	for _, obj := range v.Scene.Objects() {
		r, ok := v.Outline(obj)
		if !ok || x < r.X0 || x > r.X1 || y < r.Y0 || y > r.Y1 {
			continue
		}
		if d := v.Camera.Depth(obj.Position); d < bestDepth {
			best, bestDepth = obj.ID, d
		}
	}
	return best, best != ""
}
