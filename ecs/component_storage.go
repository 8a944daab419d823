package ecs

import (
	"iter"
	"reflect"
)

// columnStorage is the type-erased view of one component column.
type columnStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to column factories. Every Storage
// owns exactly one registry, so two games never share component columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() columnStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() columnStorage),
	}
}

// RegisterComponent registers T with the registry. Spawning an entity with an
// unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() columnStorage {
		return &column[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() columnStorage {
	return r.factories[t]
}

const blockSize = 64

// column stores components of type T in fixed-size blocks. Blocks are held by
// pointer so growing the column never moves existing components and pointers
// returned by Get stay valid until the slot is deleted or compacted.
type column[T any] struct {
	blocks []*[blockSize]T
	filled []*[blockSize]bool
	free   []int
	next   int
	live   int
}

func locate(index int) (int, int) {
	return index / blockSize, index % blockSize
}

// Append stores a T (or *T) and returns its slot index, or -1 on a type mismatch.
func (c *column[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if b, _ := locate(index); b >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.filled = append(c.filled, new([blockSize]bool))
		}
	}

	b, s := locate(index)
	c.blocks[b][s] = value
	c.filled[b][s] = true
	c.live++
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (c *column[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	b, s := locate(index)
	return &c.blocks[b][s]
}

// Delete zeroes the slot and puts it on the free list.
func (c *column[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	b, s := locate(index)
	var zero T
	c.blocks[b][s] = zero
	c.filled[b][s] = false
	c.free = append(c.free, index)
	c.live--
}

// Has reports whether the slot holds a component.
func (c *column[T]) Has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	b, s := locate(index)
	return c.filled[b][s]
}

// Len returns the number of live components.
func (c *column[T]) Len() int {
	return c.live
}

// Compact packs live components to the front and returns old->new indices.
func (c *column[T]) Compact() map[int]int {
	moved := make(map[int]int, c.live)
	blocks := make([]*[blockSize]T, 0, (c.live+blockSize-1)/blockSize)
	filled := make([]*[blockSize]bool, 0, cap(blocks))

	write := 0
	for read := range c.Iter() {
		wb, ws := locate(write)
		if wb >= len(blocks) {
			blocks = append(blocks, new([blockSize]T))
			filled = append(filled, new([blockSize]bool))
		}
		rb, rs := locate(read)
		blocks[wb][ws] = c.blocks[rb][rs]
		filled[wb][ws] = true
		moved[read] = write
		write++
	}

	c.blocks = blocks
	c.filled = filled
	c.free = nil
	c.next = write
	return moved
}

// Iter yields live slot indices in ascending order.
func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			b, s := locate(i)
			if c.filled[b][s] && !yield(i) {
				return
			}
		}
	}
}
