package ecs

import (
	"iter"
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype represents a unique combination of component types
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	columns  map[reflect.Type]int

	// entities maps a row back to the entity that owns it
	entities []EntityId
	count    int
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		columns:  make(map[reflect.Type]int, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
		a.columns[typ] = idx
	}

	return a
}

// spawn stores one component per archetype type and returns the row.
// byType must hold a value for every type of the archetype.
func (a *Archetype) spawn(id EntityId, byType map[reflect.Type]any) uint32 {
	row := -1
	for idx, typ := range a.types {
		comp, ok := byType[typ]
		if !ok {
			panic("missing component " + typ.String() + " for archetype")
		}
		pos := a.storages[idx].Append(comp)
		if pos < 0 {
			panic("component value does not match type " + typ.String())
		}
		if row != -1 && pos != row {
			panic("archetype columns out of step")
		}
		row = pos
	}

	for len(a.entities) <= row {
		a.entities = append(a.entities, NoEntity)
	}
	a.entities[row] = id
	a.count++
	return uint32(row)
}

// delete clears a row in every column. The row is reused by a later spawn.
func (a *Archetype) delete(row uint32) {
	if int(row) >= len(a.entities) || a.entities[row] == NoEntity {
		return
	}
	for _, storage := range a.storages {
		storage.Delete(int(row))
	}
	a.entities[row] = NoEntity
	a.count--
}

// GetComponent returns a pointer to the component of the given type at row, or nil
func (a *Archetype) GetComponent(row uint32, compType reflect.Type) any {
	idx, ok := a.columns[compType]
	if !ok {
		return nil
	}
	return a.storages[idx].Get(int(row))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	_, ok := a.columns[compType]
	return ok
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return slices.Clone(a.types)
}

// Len returns the number of live entities in this archetype
func (a *Archetype) Len() int {
	return a.count
}

// Iter returns an iterator over all live entities in this archetype
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range a.entities {
			if id == NoEntity {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// rows iterates live rows together with their owners.
func (a *Archetype) rows() iter.Seq2[uint32, EntityId] {
	return func(yield func(uint32, EntityId) bool) {
		for row, id := range a.entities {
			if id == NoEntity {
				continue
			}
			if !yield(uint32(row), id) {
				return
			}
		}
	}
}
