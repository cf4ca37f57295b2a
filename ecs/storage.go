package ecs

import (
	"reflect"
	"slices"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	// ordered keeps archetypes in creation order so iteration is deterministic
	ordered  []*Archetype
	registry *ComponentRegistry

	locations *intmap.Map[EntityId, entityLocation]
	nextId    EntityId

	singletons map[reflect.Type]*singletonEntry
	events     map[reflect.Type]eventQueue
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		locations:  intmap.New[EntityId, entityLocation](1024),
		singletons: make(map[reflect.Type]*singletonEntry),
		events:     make(map[reflect.Type]eventQueue),
	}
}

// Registry returns the component registry the storage was created with
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns every archetype in creation order
func (s *Storage) Archetypes() []*Archetype {
	return s.ordered
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// Reserve hands out an entity id without creating the entity. Commands use it
// so a deferred spawn can be referred to before it is applied.
func (s *Storage) Reserve() EntityId {
	s.nextId++
	return s.nextId
}

// Spawn creates a new entity with the provided components. When the same
// component type is passed more than once the last value wins.
func (s *Storage) Spawn(components ...any) EntityId {
	id := s.Reserve()
	s.spawnReserved(id, components)
	return id
}

func (s *Storage) spawnReserved(id EntityId, components []any) {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	byType := make(map[reflect.Type]any, len(components))
	for _, comp := range components {
		byType[componentType(comp)] = comp
	}

	types := make([]reflect.Type, 0, len(byType))
	for typ := range byType {
		types = append(types, typ)
	}
	sort.Sort(byTypeName(types))

	archetype := s.archetypeFor(types)
	row := archetype.spawn(id, byType)
	s.locations.Put(id, entityLocation{archetype: archetype, row: row})
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if exists {
		if !slices.Equal(archetype.types, types) {
			panic("archetype hash collision between component sets")
		}
		return archetype
	}

	archetype = NewArchetype(archetypeId, types, s.registry)
	s.archetypes[archetypeId] = archetype
	s.ordered = append(s.ordered, archetype)
	return archetype
}

// Alive reports whether the entity currently exists
func (s *Storage) Alive(id EntityId) bool {
	return s.locations.Has(id)
}

// Delete removes all data related to the entity ID. Unknown ids are ignored.
func (s *Storage) Delete(id EntityId) {
	loc, ok := s.locations.Get(id)
	if !ok {
		return
	}
	loc.archetype.delete(loc.row)
	s.locations.Del(id)
}

// AddComponent inserts a component on an entity, replacing any existing
// component of the same type. It returns false if the entity does not exist.
func (s *Storage) AddComponent(id EntityId, component any) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}

	compType := componentType(component)
	oldArchetype := loc.archetype
	if idx, has := oldArchetype.columns[compType]; has {
		return oldArchetype.storages[idx].Set(int(loc.row), component)
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	byType := s.collect(loc)
	byType[compType] = component
	s.move(id, loc, newTypes, byType)
	return true
}

// RemoveComponent removes a component from an entity. An entity left with no
// components is deleted. Missing entities and components are ignored.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) {
	loc, ok := s.locations.Get(id)
	if !ok || !loc.archetype.HasComponent(compType) {
		return
	}

	newTypes := make([]reflect.Type, 0, len(loc.archetype.types)-1)
	for _, typ := range loc.archetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		s.Delete(id)
		return
	}

	byType := s.collect(loc)
	delete(byType, compType)
	s.move(id, loc, newTypes, byType)
}

// collect copies the component values at a location.
func (s *Storage) collect(loc entityLocation) map[reflect.Type]any {
	byType := make(map[reflect.Type]any, len(loc.archetype.types)+1)
	for idx, typ := range loc.archetype.types {
		ptr := loc.archetype.storages[idx].Get(int(loc.row))
		byType[typ] = reflect.ValueOf(ptr).Elem().Interface()
	}
	return byType
}

// move re-homes an entity into the archetype for types. The entity keeps its id.
func (s *Storage) move(id EntityId, loc entityLocation, types []reflect.Type, byType map[reflect.Type]any) {
	newArchetype := s.archetypeFor(types)
	loc.archetype.delete(loc.row)
	row := newArchetype.spawn(id, byType)
	s.locations.Put(id, entityLocation{archetype: newArchetype, row: row})
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return loc.archetype.GetComponent(loc.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// ComponentTypes returns the sorted component types of an entity, or nil if it does not exist
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return loc.archetype.Types()
}

// componentType returns the storage type of a component value.
func componentType(comp any) reflect.Type {
	compType := reflect.TypeOf(comp)
	if compType == nil {
		panic("components cannot be nil")
	}

	// If it's a pointer, get the underlying type
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
		compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentType(comp))
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// Use the type's pointer as a unique identifier
		ptr := (*iface)(unsafe.Pointer(&t)).data
		val := uint32(uintptr(ptr))

		// Mix in the high bytes on 64-bit systems
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to the entity's T, or nil if it has none
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// Has reports whether the entity carries a T
func Has[T any](storage *Storage, entityId EntityId) bool {
	return storage.HasComponent(entityId, reflect.TypeFor[T]())
}
