package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/traceable/ecs/component"
)

// PickWorld mirrors board entities into a Chipmunk space as kinematic boxes
// and answers "what is under this point" queries.
type PickWorld struct {
	space  *cp.Space
	bodies map[Entity]*pickBody
}

type pickBody struct {
	body   *cp.Body
	shape  *cp.Shape
	w, h   float64
	center cp.Vector
	seen   bool
}

// NewPickWorld creates an empty pick world.
func NewPickWorld() *PickWorld {
	return &PickWorld{
		space:  cp.NewSpace(),
		bodies: make(map[Entity]*pickBody),
	}
}

// Sync updates boxes from every entity with a Transform and Bounds and drops
// boxes for entities that lost either.
func (pw *PickWorld) Sync(w *World) {
	if pw == nil || w == nil {
		return
	}
	for _, pb := range pw.bodies {
		pb.seen = false
	}

	ForEach2(w, component.TransformComponent, component.BoundsComponent, func(e Entity, t *component.Transform, b *component.Bounds) {
		if b.W <= 0 || b.H <= 0 {
			return
		}
		pb := pw.bodies[e]
		if pb != nil && (pb.w != b.W || pb.h != b.H) {
			pw.remove(e)
			pb = nil
		}
		center := cp.Vector{X: t.X + b.W/2, Y: t.Y + b.H/2}
		switch {
		case pb == nil:
			body := cp.NewKinematicBody()
			body.SetPosition(center)
			shape := cp.NewBox(body, b.W, b.H, 0)
			shape.UserData = e
			pw.space.AddBody(body)
			pw.space.AddShape(shape)
			pb = &pickBody{body: body, shape: shape, w: b.W, h: b.H, center: center}
			pw.bodies[e] = pb
		case pb.center != center:
			// the space never steps, so the index only sees a moved box
			// when its shape is inserted again
			pb.body.SetPosition(center)
			pw.space.RemoveShape(pb.shape)
			pw.space.AddShape(pb.shape)
			pb.center = center
		}
		pb.seen = true
	})

	for e, pb := range pw.bodies {
		if !pb.seen {
			pw.remove(e)
		}
	}
}

func (pw *PickWorld) remove(e Entity) {
	pb, ok := pw.bodies[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(pb.shape)
	pw.space.RemoveBody(pb.body)
	delete(pw.bodies, e)
}

// Pick returns the topmost entity under (x, y). Ties on RenderLayer go to the
// newer entity slot.
func (pw *PickWorld) Pick(w *World, x, y float64) (Entity, bool) {
	if pw == nil || pw.space == nil {
		return 0, false
	}
	var (
		best      Entity
		bestLayer int
		found     bool
	)
	p := cp.Vector{X: x, Y: y}
	pw.space.BBQuery(cp.NewBBForCircle(p, 0), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if shape.PointQuery(p).Distance > 0 {
			return
		}
		e, ok := shape.UserData.(Entity)
		if !ok || !IsAlive(w, e) {
			return
		}
		layer := 0
		if l, ok := Get(w, e, component.RenderLayerComponent); ok {
			layer = l.Index
		}
		if !found || layer > bestLayer || (layer == bestLayer && e.id() > best.id()) {
			best, bestLayer, found = e, layer, true
		}
	}, nil)
	return best, found
}

// Len reports how many boxes are mirrored.
func (pw *PickWorld) Len() int {
	if pw == nil {
		return 0
	}
	return len(pw.bodies)
}
