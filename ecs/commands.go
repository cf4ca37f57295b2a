package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are applied at the end of a schedule.
// This prevents structural changes to the ECS storage during system execution.
// Operations are applied in the order they were issued. Operations on entities
// that no longer exist are dropped.
type Commands struct {
	storage *Storage
	ops     []command
}

func newCommands(storage *Storage) *Commands {
	return &Commands{storage: storage}
}

type commandKind uint8

const (
	cmdSpawn commandKind = iota
	cmdDelete
	cmdAdd
	cmdRemove
	cmdDefer
)

type command struct {
	kind       commandKind
	entity     EntityId
	components []any
	compType   reflect.Type
	fn         func()
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.ops = append(c.ops, command{kind: cmdDefer, fn: fn})
}

// Spawn queues an entity spawn operation with the given components. The id is
// reserved immediately so later commands in the same batch can refer to it.
func (c *Commands) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}
	id := c.storage.Reserve()
	c.ops = append(c.ops, command{kind: cmdSpawn, entity: id, components: components})
	return id
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity EntityId) {
	c.ops = append(c.ops, command{kind: cmdDelete, entity: entity})
}

// AddComponent queues a component insertion. An existing component of the same type is replaced.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.ops = append(c.ops, command{kind: cmdAdd, entity: entity, components: []any{component}})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.ops = append(c.ops, command{kind: cmdRemove, entity: entity, compType: compType})
}

// Remove queues removal of the entity's T.
func Remove[T any](c *Commands, entity EntityId) {
	c.RemoveComponent(entity, reflect.TypeFor[T]())
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Flush applies all commands to the provided storage, resetting the buffer state.
// Deferred functions may queue further commands; those run in the same flush.
func (c *Commands) Flush(storage *Storage) {
	for i := 0; i < len(c.ops); i++ {
		cmd := c.ops[i]
		switch cmd.kind {
		case cmdSpawn:
			storage.spawnReserved(cmd.entity, cmd.components)
		case cmdDelete:
			storage.Delete(cmd.entity)
		case cmdAdd:
			storage.AddComponent(cmd.entity, cmd.components[0])
		case cmdRemove:
			storage.RemoveComponent(cmd.entity, cmd.compType)
		case cmdDefer:
			cmd.fn()
		}
	}

	clear(c.ops)
	c.ops = c.ops[:0]
}
