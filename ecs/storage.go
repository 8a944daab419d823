package ecs

import (
	"reflect"
	"slices"
	"strings"
	"unsafe"
	"weak"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity and singleton of one world.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage using the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](16),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the storage's component registry.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

func (s *Storage) archetype(id uint32) *Archetype {
	a, _ := s.archetypes.Get(id)
	return a
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypes(types)
	if a := s.archetype(id); a != nil {
		return a
	}
	a := newArchetype(id, types, s.registry)
	s.archetypes.Put(id, a)
	s.order = append(s.order, a)
	return a
}

// Spawn creates an entity from component values (or pointers to them).
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}
	a := s.archetypeFor(componentTypes(components))
	return a.spawn(components)
}

// Delete removes the entity. Unknown or already deleted ids are ignored, even
// when their slot has since been reused.
func (s *Storage) Delete(id EntityId) {
	if a := s.archetype(id.ArchetypeId()); a != nil && a.Alive(id) {
		a.delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	a := s.archetype(id.ArchetypeId())
	return a != nil && a.Alive(id)
}

// AddComponent moves the entity to the archetype that also holds component
// and returns its new id. Adding a type the entity already has overwrites it.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old := s.archetype(id.ArchetypeId())
	if old == nil || !old.Alive(id) {
		return 0
	}

	added := componentType(component)
	if old.HasComponent(added) {
		ptr := old.GetComponent(id.Index(), added)
		reflect.ValueOf(ptr).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	types := append(slices.Clone(old.types), added)
	sortTypes(types)
	return s.move(id, old, types, component)
}

// RemoveComponent moves the entity to the archetype without compType. Removing
// the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old := s.archetype(id.ArchetypeId())
	if old == nil || !old.Alive(id) || !old.HasComponent(compType) {
		return id
	}

	types := make([]reflect.Type, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != compType {
			types = append(types, typ)
		}
	}
	if len(types) == 0 {
		old.delete(id.Index())
		return 0
	}
	return s.move(id, old, types, nil)
}

func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, extra any) EntityId {
	dst := s.archetypeFor(types)

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if comp := old.GetComponent(id.Index(), typ); comp != nil {
			components = append(components, comp)
		}
	}
	if extra != nil {
		components = append(components, extra)
	}

	newId := dst.spawn(components)
	old.moveRef(id, dst, newId)
	old.delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	a := s.archetype(id.ArchetypeId())
	if a == nil || !a.Alive(id) {
		return nil
	}
	return a.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	a := s.archetype(id.ArchetypeId())
	return a != nil && a.Alive(id) && a.HasComponent(compType)
}

// Count returns the number of live entities.
func (s *Storage) Count() int {
	n := 0
	for _, a := range s.order {
		n += a.Len()
	}
	return n
}

// Clear deletes every entity. Singletons are kept.
func (s *Storage) Clear() {
	for _, a := range s.order {
		for id := range a.Iter() {
			a.delete(id.Index())
		}
	}
}

// CreateEntityRef returns the shared EntityRef for id, creating it if needed.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	a := s.archetype(id.ArchetypeId())
	if a == nil || !a.Alive(id) {
		return nil
	}

	if ptr, ok := a.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			return ref
		}
		a.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: a}
	a.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id of a live referenced entity.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref without touching the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}
	if a := s.archetype(ref.Id.ArchetypeId()); a != nil {
		a.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one. A pointer value is stored by reference.
func (s *Storage) AddSingleton(value any) {
	rv := reflect.ValueOf(value)
	var data unsafe.Pointer
	if rv.Kind() == reflect.Pointer {
		data = rv.UnsafePointer()
		rv = rv.Elem()
	} else {
		holder := reflect.New(rv.Type())
		holder.Elem().Set(rv)
		data = holder.UnsafePointer()
	}

	if entry, ok := s.singletons[rv.Type()]; ok {
		reflect.NewAt(rv.Type(), entry.dataPtr).Elem().Set(rv)
		return
	}
	s.singletons[rv.Type()] = &singletonEntry{typ: rv.Type(), dataPtr: data}
}

// ReadSingleton points *target (a **T) at the stored singleton of type T.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton target must be a pointer to a pointer")
	}
	typ := rv.Elem().Type().Elem()
	entry := s.singletons[typ]
	if entry == nil {
		return false
	}
	rv.Elem().Set(reflect.NewAt(typ, entry.dataPtr))
	return true
}

// RemoveSingleton drops the singleton of type t.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// componentTypes extracts and sorts component types. Components are value
// types; pointers, maps, channels and funcs are rejected.
func componentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// hashTypes is FNV-1a over the runtime type pointers of a sorted type list.
func hashTypes(types []reflect.Type) uint32 {
	h := uint32(2166136261)
	const prime = uint32(16777619)

	for _, t := range types {
		ptr := uintptr(pointerOf(t))
		h ^= uint32(ptr) ^ uint32(uint64(ptr)>>32)
		h *= prime
	}
	return h
}

// ComponentReader is satisfied by Storage and anything else that can look up
// components by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
