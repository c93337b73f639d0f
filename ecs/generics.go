package ecs

import (
	"fmt"

	"github.com/milk9111/traceable/ecs/component"
)

func storeFor[T any](w *World, handle component.ComponentHandle[T], create bool) *SparseSet[T] {
	if w == nil {
		return nil
	}
	id := handle.Kind().ID()
	if s, ok := w.stores[id]; ok {
		typed, _ := s.(*SparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	s := &SparseSet[T]{}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	w.stores[id] = s
	return s
}

// Add sets e's component, replacing any previous value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if !handle.Kind().Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("%w: %s", component.ErrNilComponent, handle.Kind())
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: add %s to %s", component.ErrEntityNotAlive, handle.Kind(), e)
	}
	storeFor(w, handle, true).set(e.id(), value)
	return nil
}

// Get returns e's component.
func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	return storeFor(w, handle, false).get(e.id())
}

// Has reports whether e carries the component.
func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	_, ok := Get(w, e, handle)
	return ok
}

// Remove drops e's component and reports whether it was present.
func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, handle, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// Update runs fn on the component of the entity bound to id.
func Update[T any](w *World, id string, handle component.ComponentHandle[T], fn func(*T)) bool {
	e, ok := w.Lookup(id)
	if !ok {
		return false
	}
	v, ok := Get(w, e, handle)
	if !ok {
		return false
	}
	fn(v)
	return true
}

// ForEach visits every live entity carrying the component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	s := storeFor(w, handle, false)
	if s == nil {
		return
	}
	// copy so fn may add or remove components
	ids := append([]entityID(nil), s.dense...)
	for _, id := range ids {
		e := makeEntity(id, w.entities.gens[id-1])
		v, ok := s.get(id)
		if !ok || !w.entities.isAlive(e) {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits entities carrying both components.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sb := storeFor(w, hb, false)
	if sb == nil {
		return
	}
	ForEach(w, ha, func(e Entity, a *A) {
		if b, ok := sb.get(e.id()); ok {
			fn(e, a, b)
		}
	})
}

// ForEach3 visits entities carrying all three components.
func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	sc := storeFor(w, hc, false)
	if sc == nil {
		return
	}
	ForEach2(w, ha, hb, func(e Entity, a *A, b *B) {
		if c, ok := sc.get(e.id()); ok {
			fn(e, a, b, c)
		}
	})
}

// First returns any live entity carrying the component.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	s := storeFor(w, handle, false)
	if s == nil {
		return 0, false
	}
	for _, id := range s.dense {
		e := makeEntity(id, w.entities.gens[id-1])
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// Count returns how many entities carry the component.
func Count[T any](w *World, handle component.ComponentHandle[T]) int {
	return storeFor(w, handle, false).len()
}
