// Package component declares the board's component types and the typed
// handles the ecs package stores them under.
package component

import (
	"errors"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
	ErrEmptyID              = errors.New("ecs: empty id")
)

// ComponentID keys a component store inside a world. Zero is never issued.
type ComponentID uint32

var lastID atomic.Uint32

// ComponentKind identifies the store for values of type T.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

// NewComponentKind issues a fresh kind. Two calls for the same T give two
// independent stores.
func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{
		id:   ComponentID(lastID.Add(1)),
		name: reflect.TypeFor[T]().String(),
	}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

// Valid is false for the zero kind.
func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

// String names the kind after its Go type, for error messages and logs.
func (k ComponentKind[T]) String() string {
	if !k.Valid() {
		return "<invalid>"
	}
	return k.name
}

// ComponentHandle is what systems hold to read and write one component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
