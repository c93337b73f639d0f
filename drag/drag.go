// Package drag implements the press/move/release state machine shared by
// every draggable board entity.
package drag

import "honnef.co/go/curve"

// Session is one entity's drag state. The zero value is idle.
type Session struct {
	active bool
	offset curve.Vec2
}

// Start grabs the entity at pointer. origin is the entity's current top-left,
// so the grab point stays under the cursor while moving.
func (s *Session) Start(pointer, origin curve.Point) {
	if s == nil {
		return
	}
	s.active = true
	s.offset = pointer.Sub(origin)
}

// Move returns the entity's new top-left for pointer. It reports false while
// no drag is active.
func (s *Session) Move(pointer curve.Point) (curve.Point, bool) {
	if s == nil || !s.active {
		return curve.Point{}, false
	}
	return pointer.Translate(s.offset.Negate()), true
}

// Release ends the drag and reports whether one was active.
func (s *Session) Release() bool {
	if s == nil || !s.active {
		return false
	}
	s.active = false
	s.offset = curve.Vec2{}
	return true
}

// Active reports whether the entity is being dragged.
func (s *Session) Active() bool {
	return s != nil && s.active
}

// Offset is the grab point relative to the entity's top-left.
func (s *Session) Offset() curve.Vec2 {
	if s == nil {
		return curve.Vec2{}
	}
	return s.offset
}
