package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity that has exactly one particular set of
// component types. Each type gets its own column; a given entity occupies the
// same slot index in all of them.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []columnStorage
	gens    []uint8
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]columnStorage, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for i, typ := range types {
		factory := registry.factory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		a.columns[i] = factory()
	}

	return a
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the archetype's component types sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// spawn appends components to their columns and returns the new entity's id.
func (a *Archetype) spawn(components []any) EntityId {
	slot := -1
	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx == -1 {
			continue
		}
		slot = a.columns[idx].Append(comp)
	}
	for len(a.gens) <= slot {
		a.gens = append(a.gens, 0)
	}
	return a.idAt(uint32(slot))
}

// idAt is the id of whatever currently occupies the slot.
func (a *Archetype) idAt(index uint32) EntityId {
	var gen uint8
	if int(index) < len(a.gens) {
		gen = a.gens[index]
	}
	return newEntityId(a.id, index, gen)
}

// GetComponent returns a pointer to the entity's component, or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.columns[idx].Get(int(index))
}

// Alive reports whether id belongs to this archetype and its slot still holds
// the entity it was issued for.
func (a *Archetype) Alive(id EntityId) bool {
	index := id.Index()
	return id.ArchetypeId() == a.id &&
		len(a.columns) > 0 &&
		a.columns[0].Has(int(index)) &&
		a.idAt(index) == id
}

// delete frees the slot in every column, invalidates any EntityRef and moves
// the slot to its next generation.
func (a *Archetype) delete(index uint32) {
	id := a.idAt(index)
	if ptr, ok := a.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	for _, col := range a.columns {
		col.Delete(int(index))
	}
	if int(index) < len(a.gens) {
		a.gens[index]++
	}
}

// moveRef re-homes the EntityRef tracked for id onto dst under newId.
func (a *Archetype) moveRef(id EntityId, dst *Archetype, newId EntityId) {
	ptr, ok := a.refs.Get(id)
	if !ok {
		return
	}
	a.refs.Del(id)
	if ref := ptr.Value(); ref != nil {
		ref.Id = newId
		ref.Archetype = dst
		dst.refs.Put(newId, ptr)
	}
}

// Compact removes holes left by deleted entities. EntityRefs are rewritten to
// the new slots; every raw EntityId issued before the call becomes dead.
func (a *Archetype) Compact() {
	if len(a.columns) == 0 {
		return
	}

	moved := a.columns[0].Compact()
	for _, col := range a.columns[1:] {
		col.Compact()
	}

	before := make(map[int]EntityId, len(moved))
	for from := range moved {
		before[from] = a.idAt(uint32(from))
	}
	for i := range a.gens {
		a.gens[i]++
	}

	refs := intmap.New[EntityId, weak.Pointer[EntityRef]](a.refs.Len())
	for from, to := range moved {
		ptr, ok := a.refs.Get(before[from])
		if !ok {
			continue
		}
		if ref := ptr.Value(); ref != nil {
			ref.Id = a.idAt(uint32(to))
			refs.Put(ref.Id, ptr)
		}
	}
	a.refs = refs
}

// Iter yields the ids of all live entities in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(a.idAt(uint32(index))) {
				return
			}
		}
	}
}
