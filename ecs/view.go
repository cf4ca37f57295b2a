package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldMode uint8

const (
	fieldRequired fieldMode = iota
	fieldOptional
	fieldWithout
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components
// The type T should be a struct with embedded pointer fields for each component type
// Named fields can be marked with the `ecs:"optional"` or `ecs:"without"` struct tags.
// A non-pointer EntityId field is filled with the id of the matched entity.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	modes       []fieldMode
	fieldOffset []uintptr

	hasId    bool
	idOffset uintptr
}

// NewView creates a new view for the given struct type
// The struct T should have embedded or named fields that are pointers to component types
// Embedded fields are always required
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			if v.hasId {
				panic("View struct may only have one EntityId field")
			}
			v.hasId = true
			v.idOffset = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		mode := fieldRequired
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				mode = fieldOptional
			case "without":
				mode = fieldWithout
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" and \"without\" are supported)")
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.modes = append(v.modes, mode)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is missing any required components or carries an excluded one
// Optional components are set to nil if not present
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	loc, ok := v.storage.locations.Get(id)
	if !ok || !v.matchesArchetype(loc.archetype) {
		return false
	}
	v.populateResult(unsafe.Pointer(ptr), id, loc.archetype, loc.row, v.buildStorageIndices(loc.archetype))
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't match the view
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// matchesArchetype checks that an archetype has every required type and none of the excluded ones
func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, typ := range v.types {
		switch v.modes[i] {
		case fieldRequired:
			if !archetype.HasComponent(typ) {
				return false
			}
		case fieldWithout:
			if archetype.HasComponent(typ) {
				return false
			}
		}
	}
	return true
}

func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	storageIndices := make([]int, len(v.types))
	for i, componentType := range v.types {
		idx, ok := archetype.columns[componentType]
		if !ok || v.modes[i] == fieldWithout {
			idx = -1
		}
		storageIndices[i] = idx
	}
	return storageIndices
}

// populateResult writes component pointers into the struct at resultPtr.
// The archetype must already match the view.
func (v *View[T]) populateResult(resultPtr unsafe.Pointer, id EntityId, archetype *Archetype, row uint32, storageIndices []int) {
	if v.hasId {
		*(*EntityId)(unsafe.Pointer(uintptr(resultPtr) + v.idOffset)) = id
	}

	for i, storageIdx := range storageIndices {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + v.fieldOffset[i])

		if storageIdx == -1 {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		component := archetype.storages[storageIdx].Get(int(row))
		if component == nil {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}
		*(*unsafe.Pointer)(fieldPtr) = dataPointer(component)
	}
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		storageIndices := v.buildStorageIndices(archetype)

		var result T
		resultPtr := unsafe.Pointer(&result)

		for row, id := range archetype.rows() {
			v.populateResult(resultPtr, id, archetype, row, storageIndices)
			if !yield(id, result) {
				return
			}
		}
	}
}

// Iter returns an iterator over all entities matching this view in archetype creation order
// The iterator yields (EntityId, T) pairs where T is the populated view struct
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.ordered {
			if !v.matchesArchetype(archetype) {
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

// Spawn creates a new entity with the components referenced by the view struct.
// Nil optional and excluded fields are skipped.
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i]))

		if componentPtr == nil {
			if v.modes[i] == fieldRequired {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		if v.modes[i] == fieldWithout {
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
