package studio

import (
	"image/color"
	"math"

	"github.com/milk9111/traceable/common"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the active edit tool.
type Mode int

const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	default:
		return "translate"
	}
}

const (
	DefaultObjectID = "default-cube"
	minScale        = 0.05
)

var (
	spawnPoint  = r3.Vec{Y: 0.5}
	objectColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Scene holds the studio objects in insertion order plus the selection.
type Scene struct {
	objects  []*SceneObject
	selected string
	mode     Mode
	newID    func() string
}

// NewScene returns the starting scene: one box rotated a quarter turn about Y.
func NewScene() *Scene {
	s := &Scene{newID: common.NewID}
	s.objects = append(s.objects, &SceneObject{
		ID:       DefaultObjectID,
		Shape:    ShapeBox,
		Position: spawnPoint,
		Rotation: r3.Vec{Y: math.Pi / 4},
		Scale:    r3.Vec{X: 1, Y: 1, Z: 1},
		Color:    objectColor,
	})
	return s
}

// Add spawns a shape at the centre of the ground and selects it.
func (s *Scene) Add(shape Shape) string {
	if s == nil {
		return ""
	}
	obj := &SceneObject{
		ID:       s.newID(),
		Shape:    shape,
		Position: spawnPoint,
		Scale:    r3.Vec{X: 1, Y: 1, Z: 1},
		Color:    objectColor,
	}
	s.objects = append(s.objects, obj)
	s.selected = obj.ID
	return obj.ID
}

// DeleteSelected removes the selected object and clears the selection.
func (s *Scene) DeleteSelected() bool {
	if s == nil || s.selected == "" {
		return false
	}
	for i, o := range s.objects {
		if o.ID == s.selected {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			s.selected = ""
			return true
		}
	}
	s.selected = ""
	return false
}

// Select selects id. An empty id clears the selection; an unknown id is
// rejected.
func (s *Scene) Select(id string) bool {
	if s == nil {
		return false
	}
	if id == "" {
		s.selected = ""
		return true
	}
	if _, ok := s.Object(id); !ok {
		return false
	}
	s.selected = id
	return true
}

func (s *Scene) SelectedID() string {
	if s == nil {
		return ""
	}
	return s.selected
}

func (s *Scene) Selected() (*SceneObject, bool) {
	return s.Object(s.SelectedID())
}

func (s *Scene) Object(id string) (*SceneObject, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Objects returns the objects in insertion order.
func (s *Scene) Objects() []*SceneObject {
	if s == nil {
		return nil
	}
	return append([]*SceneObject(nil), s.objects...)
}

func (s *Scene) Mode() Mode {
	if s == nil {
		return ModeTranslate
	}
	return s.mode
}

func (s *Scene) SetMode(m Mode) {
	if s == nil {
		return
	}
	s.mode = m
}

// Nudge applies delta to the selected object using the current mode:
// translate adds it to the position, rotate adds radians, scale grows each
// axis by the given fraction.
func (s *Scene) Nudge(delta r3.Vec) bool {
	obj, ok := s.Selected()
	if !ok {
		return false
	}
	switch s.mode {
	case ModeTranslate:
		obj.Position = r3.Add(obj.Position, delta)
	case ModeRotate:
		obj.Rotation = r3.Add(obj.Rotation, delta)
	case ModeScale:
		obj.Scale = r3.Vec{
			X: math.Max(minScale, obj.Scale.X*(1+delta.X)),
			Y: math.Max(minScale, obj.Scale.Y*(1+delta.Y)),
			Z: math.Max(minScale, obj.Scale.Z*(1+delta.Z)),
		}
	}
	return true
}
