package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// singletonEntry holds a resource value on the heap so pointers to it stay
// valid until the resource is replaced or removed.
type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the resource of its type, replacing any
// existing one. Pointer values are dereferenced.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("singletons cannot be nil")
	}
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// RemoveSingleton drops the resource of type t. Missing resources are ignored.
func (s *Storage) RemoveSingleton(t reflect.Type) {
	delete(s.singletons, t)
}

// HasSingleton reports whether a resource of type t exists
func (s *Storage) HasSingleton(t reflect.Type) bool {
	_, ok := s.singletons[t]
	return ok
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton points out, which must be a **T, at the stored resource of
// type T. It returns false and leaves out untouched if the resource does not exist.
func (s *Storage) ReadSingleton(out any) bool {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}
	entry := s.getSingletonEntry(v.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

// singletonTypeNames lists the resource types in name order.
func (s *Storage) singletonTypeNames() []string {
	names := make([]string, 0, len(s.singletons))
	for t := range s.singletons {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// Singleton provides access to a single component instance that is not
// associated with any entity. Use this for global game state, configuration,
// or other resources.
type Singleton[T any] struct {
	storage       *Storage
	componentType reflect.Type
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If initializer is provided and the singleton doesn't exist in storage,
// it will be created with the initializer value. Otherwise, a zero value is used.
// This guarantees the singleton exists in storage after the call.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	if storage.getSingletonEntry(componentType) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	return &Singleton[T]{
		storage:       storage,
		componentType: componentType,
	}
}

// Init initializes the Singleton with a storage reference.
// This is called automatically by the Scheduler during system registration.
// Unlike NewSingleton it does not create the resource.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
}

// Get returns a pointer to the singleton component.
// Returns nil if the singleton is not currently in storage.
func (s *Singleton[T]) Get() *T {
	if s.storage == nil {
		return nil
	}
	entry := s.storage.getSingletonEntry(s.componentType)
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}

// Exists returns true if the singleton component is in storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// Set replaces the resource value, creating it if needed
func (s *Singleton[T]) Set(value T) {
	if ptr := s.Get(); ptr != nil {
		*ptr = value
		return
	}
	s.storage.AddSingleton(value)
}

// GetSingleton returns the resource of type T, or nil
func GetSingleton[T any](storage *Storage) *T {
	entry := storage.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return nil
	}
	return (*T)(entry.dataPtr)
}

// SetSingleton inserts or replaces the resource of type T
func SetSingleton[T any](storage *Storage, value T) {
	storage.AddSingleton(value)
}

// RemoveSingleton drops the resource of type T
func RemoveSingleton[T any](storage *Storage) {
	storage.RemoveSingleton(reflect.TypeFor[T]())
}
