package studio

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Edge is one wireframe segment in object-local space.
type Edge [2]r3.Vec

const ringSegments = 16

var meshes = map[Shape][]Edge{
	ShapeBox:      boxEdges(),
	ShapeCylinder: cylinderEdges(),
	ShapeSphere:   sphereEdges(),
	ShapeCone:     coneEdges(),
}

// Wireframe returns the unit mesh for shape. Unknown shapes draw as boxes.
func Wireframe(shape Shape) []Edge {
	if m, ok := meshes[shape]; ok {
		return m
	}
	return meshes[ShapeBox]
}

func boxEdges() []Edge {
	var corners [8]r3.Vec
	for i := range corners {
		corners[i] = r3.Vec{
			X: float64(i&1) - 0.5,
			Y: float64(i>>1&1) - 0.5,
			Z: float64(i>>2&1) - 0.5,
		}
	}
	var edges []Edge
	for i := range corners {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, Edge{corners[i], corners[i|bit]})
			}
		}
	}
	return edges
}

// ring is a circle of radius r in the plane spanned by a and b around centre.
func ring(centre, a, b r3.Vec, r float64) []Edge {
	edges := make([]Edge, 0, ringSegments)
	point := func(i int) r3.Vec {
		t := 2 * math.Pi * float64(i) / ringSegments
		return r3.Add(centre, r3.Add(r3.Scale(r*math.Cos(t), a), r3.Scale(r*math.Sin(t), b)))
	}
	for i := 0; i < ringSegments; i++ {
		edges = append(edges, Edge{point(i), point(i + 1)})
	}
	return edges
}

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

func cylinderEdges() []Edge {
	edges := ring(r3.Vec{Y: 0.5}, axisX, axisZ, 0.5)
	edges = append(edges, ring(r3.Vec{Y: -0.5}, axisX, axisZ, 0.5)...)
	for i := 0; i < 4; i++ {
		t := float64(i) * math.Pi / 2
		x, z := 0.5*math.Cos(t), 0.5*math.Sin(t)
		edges = append(edges, Edge{{X: x, Y: -0.5, Z: z}, {X: x, Y: 0.5, Z: z}})
	}
	return edges
}

func sphereEdges() []Edge {
	edges := ring(r3.Vec{}, axisX, axisZ, 0.6)
	edges = append(edges, ring(r3.Vec{}, axisX, axisY, 0.6)...)
	return append(edges, ring(r3.Vec{}, axisZ, axisY, 0.6)...)
}

func coneEdges() []Edge {
	edges := ring(r3.Vec{Y: -0.5}, axisX, axisZ, 0.5)
	apex := r3.Vec{Y: 0.5}
	for i := 0; i < 4; i++ {
		t := float64(i) * math.Pi / 2
		edges = append(edges, Edge{{X: 0.5 * math.Cos(t), Y: -0.5, Z: 0.5 * math.Sin(t)}, apex})
	}
	return edges
}
