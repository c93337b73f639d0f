package ecs

import "fmt"

// Entity is a handle to a world slot. The low half holds the slot index and
// the high half the slot's generation at the time the handle was issued.
// Destroying an entity bumps the generation, so old handles go stale.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const (
	slotBits = 32
	slotMask = 1<<slotBits - 1
)

func makeEntity(slot entityID, gen generation) Entity {
	return Entity(gen)<<slotBits | Entity(slot)
}

func (e Entity) id() entityID { return entityID(e & slotMask) }

func (e Entity) generation() generation { return generation(e >> slotBits) }

// String renders e as slot#generation, e.g. "3#1".
func (e Entity) String() string {
	return fmt.Sprintf("%d#%d", e.id(), e.generation())
}

// Valid reports whether e was ever handed out. The zero Entity means none.
func (e Entity) Valid() bool {
	return e.id() != 0
}
