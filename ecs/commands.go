package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The scheduler
// flushes them after every system in the frame has executed.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after all structural changes are applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies deletes, removes, adds, spawns and defers in that order and
// resets the buffer. Deleting the same entity twice in one frame is harmless.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		if deleted[id] {
			continue
		}
		storage.Delete(id)
		deleted[id] = true
	}

	for _, cmd := range c.removes {
		if !deleted[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !deleted[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	defers := c.defers
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = nil

	for _, fn := range defers {
		fn()
	}
}
