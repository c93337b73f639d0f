package studio

import (
	"math"

	"github.com/milk9111/traceable/common"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	defaultFOV  = 50
	nearPlane   = 0.1
	minPitch    = 0.05
	maxPitch    = math.Pi/2 - 0.05
	minDistance = 2
	maxDistance = 30
	orbitSpeed  = 0.01
)

var worldUp = r3.Vec{Y: 1}

// Camera is a perspective camera orbiting Target.
type Camera struct {
	Target   r3.Vec
	Distance float64
	Yaw      float64
	Pitch    float64
	// FOV is the vertical field of view in degrees.
	FOV float64
}

// NewCamera places the camera at (5,5,5) looking at the origin.
func NewCamera() *Camera {
	c := &Camera{FOV: defaultFOV}
	c.LookFrom(r3.Vec{X: 5, Y: 5, Z: 5})
	return c
}

// LookFrom moves the camera to eye while keeping its target.
func (c *Camera) LookFrom(eye r3.Vec) {
	if c == nil {
		return
	}
	d := r3.Sub(eye, c.Target)
	c.Distance = r3.Norm(d)
	if c.Distance == 0 {
		return
	}
	c.Yaw = math.Atan2(d.X, d.Z)
	c.Pitch = math.Asin(d.Y / c.Distance)
}

func (c *Camera) Eye() r3.Vec {
	cp := math.Cos(c.Pitch)
	offset := r3.Vec{
		X: cp * math.Sin(c.Yaw),
		Y: math.Sin(c.Pitch),
		Z: cp * math.Cos(c.Yaw),
	}
	return r3.Add(c.Target, r3.Scale(c.Distance, offset))
}

// Orbit turns the camera by a pointer delta in pixels.
func (c *Camera) Orbit(dx, dy float64) {
	if c == nil {
		return
	}
	c.Yaw -= dx * orbitSpeed
	c.Pitch = common.Clamp(c.Pitch+dy*orbitSpeed, minPitch, maxPitch)
}

// Zoom moves toward the target for positive steps.
func (c *Camera) Zoom(steps float64) {
	if c == nil {
		return
	}
	c.Distance = common.Clamp(c.Distance*math.Pow(0.9, steps), minDistance, maxDistance)
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Eye()))
	right = r3.Unit(r3.Cross(forward, worldUp))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// Depth is the distance of p in front of the camera along its view axis.
func (c *Camera) Depth(p r3.Vec) float64 {
	_, _, f := c.basis()
	return r3.Dot(r3.Sub(p, c.Eye()), f)
}

// Project maps p to pixels in a w×h viewport, origin top-left. It reports
// false for points at or behind the near plane.
func (c *Camera) Project(p r3.Vec, w, h float64) (x, y float64, ok bool) {
	if c == nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	r, u, f := c.basis()
	d := r3.Sub(p, c.Eye())
	depth := r3.Dot(d, f)
	if depth <= nearPlane {
		return 0, 0, false
	}
	t := math.Tan(c.FOV * math.Pi / 360)
	ndcX := r3.Dot(d, r) / (depth * t * (w / h))
	ndcY := r3.Dot(d, u) / (depth * t)
	return (ndcX*0.5 + 0.5) * w, (-ndcY*0.5 + 0.5) * h, true
}

// GroundAxes returns the camera's right and forward directions flattened onto
// the ground plane, for dragging objects along it.
func (c *Camera) GroundAxes() (right, forward r3.Vec) {
	r, _, f := c.basis()
	f.Y = 0
	if r3.Norm(f) == 0 {
		f = r3.Vec{Z: -1}
	}
	return r, r3.Unit(f)
}
