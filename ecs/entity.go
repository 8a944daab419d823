package ecs

import "unsafe"

// EntityId packs the archetype ID into the upper 32 bits, then an 8-bit slot
// generation and a 24-bit slot index. The generation changes whenever the
// slot is freed, so an id outlives its entity only as a dead id until the
// generation wraps after 256 reuses of the same slot.
type EntityId uint64

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
)

// NewEntityId creates a generation-zero EntityId from an archetype ID and slot index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return newEntityId(archetypeId, index, 0)
}

func newEntityId(archetypeId uint32, index uint32, gen uint8) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(gen)<<indexBits | uint64(index&indexMask))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & indexMask
}

// Generation extracts the slot generation the id was issued under.
func (e EntityId) Generation() uint8 {
	return uint8(uint32(e) >> indexBits)
}

// EntityRef is a stable handle to an entity. It follows the entity across
// archetype moves and is zeroed when the entity is deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity is still alive.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}

// System is a unit of per-tick behaviour. Query and Singleton fields on the
// implementing struct are bound to the scheduler's storage at registration.
type System interface {
	Execute(frame *UpdateFrame)
}

// eface mirrors the runtime layout of an empty interface so the data word of
// a boxed component pointer can be read without reflection.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func pointerOf(v any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&v)).data
}
