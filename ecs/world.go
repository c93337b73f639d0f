package ecs

import "github.com/milk9111/traceable/ecs/component"

// World owns board entities, their components and the string ids the rest
// of the program uses to address them.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue

	byName map[string]Entity
	names  map[Entity]string
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]store),
		byName: make(map[string]Entity),
		names:  make(map[Entity]string),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports false for a
// dead or unknown entity.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	if name, ok := w.names[e]; ok {
		delete(w.names, e)
		delete(w.byName, name)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether e is a live handle.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Bind associates a stable string id with e, replacing any previous binding
// of either.
func (w *World) Bind(e Entity, id string) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == "" {
		return component.ErrEmptyID
	}
	if old, ok := w.names[e]; ok {
		delete(w.byName, old)
	}
	if prev, ok := w.byName[id]; ok {
		delete(w.names, prev)
	}
	w.byName[id] = e
	w.names[e] = id
	return nil
}

// Lookup resolves a string id to a live entity.
func (w *World) Lookup(id string) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	e, ok := w.byName[id]
	if !ok || !w.entities.isAlive(e) {
		return 0, false
	}
	return e, true
}

// IDOf returns the string id bound to e.
func (w *World) IDOf(e Entity) (string, bool) {
	if w == nil {
		return "", false
	}
	id, ok := w.names[e]
	return id, ok
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
