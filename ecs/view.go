package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components.
// The type T should be a struct with embedded pointer fields for each component type.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
// A field of type EntityId receives the id of the entity being visited.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: View struct fields must be pointer types or EntityId")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			isOptional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype := v.storage.archetype(id.ArchetypeId())
	if archetype == nil || !archetype.Alive(id) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, v.columnsOf(archetype), int(id.Index()), id)
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef returns a populated view struct for the given entity ref, or nil if invalid
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for i, typ := range v.types {
		if !v.optional[i] && !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

// columnsOf maps each view field to the archetype's column index, -1 if absent.
func (v *View[T]) columnsOf(archetype *Archetype) []int {
	columns := make([]int, len(v.types))
	for i, typ := range v.types {
		columns[i] = archetype.columnIndex(typ)
	}
	return columns
}

func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, columns []int, index int, id EntityId) bool {
	for i, col := range columns {
		field := unsafe.Add(dst, v.fieldOffset[i])

		var component any
		if col != -1 {
			component = archetype.columns[col].Get(index)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = pointerOf(component)
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(dst, v.idOffset)) = id
	}
	return true
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		columns := v.columnsOf(archetype)

		var result T
		for id := range archetype.Iter() {
			if !v.populate(unsafe.Pointer(&result), archetype, columns, int(id.Index()), id) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter yields every matching entity, archetypes in creation order and
// entities in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity from the non-nil component fields of data.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, typ := range v.types {
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, v.fieldOffset[i]))
		if ptr == nil {
			if !v.optional[i] {
				panic("ecs: required component is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(typ, ptr).Interface())
	}

	return v.storage.Spawn(components...)
}
