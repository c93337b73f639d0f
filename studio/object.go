// Package studio is the massing studio: a small scene of primitive shapes,
// an orbiting perspective camera and a wireframe renderer.
package studio

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeCylinder Shape = "cylinder"
	ShapeSphere   Shape = "sphere"
	ShapeCone     Shape = "cone"
)

// Shapes lists the shapes the toolbar can add, in toolbar order.
var Shapes = []Shape{ShapeBox, ShapeSphere, ShapeCylinder, ShapeCone}

// SceneObject is one primitive. Rotation holds XYZ Euler angles in radians.
type SceneObject struct {
	ID       string
	Shape    Shape
	Position r3.Vec
	Rotation r3.Vec
	Scale    r3.Vec
	Color    color.NRGBA
}

// World maps a point in the object's local space to world space: scale, then
// rotate Z, Y, X, then translate.
func (o *SceneObject) World(local r3.Vec) r3.Vec {
	p := r3.Vec{X: local.X * o.Scale.X, Y: local.Y * o.Scale.Y, Z: local.Z * o.Scale.Z}
	if o.Rotation.Z != 0 {
		p = r3.NewRotation(o.Rotation.Z, r3.Vec{Z: 1}).Rotate(p)
	}
	if o.Rotation.Y != 0 {
		p = r3.NewRotation(o.Rotation.Y, r3.Vec{Y: 1}).Rotate(p)
	}
	if o.Rotation.X != 0 {
		p = r3.NewRotation(o.Rotation.X, r3.Vec{X: 1}).Rotate(p)
	}
	return r3.Add(p, o.Position)
}
