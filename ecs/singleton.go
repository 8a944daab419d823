package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton provides typed access to a single storage-owned value that is not
// attached to any entity, such as score or camera state.
type Singleton[T any] struct {
	storage      *Storage
	componentPtr unsafe.Pointer
}

// NewSingleton returns an accessor for T, adding initializer (or the zero
// value) to storage if T is not there yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the Singleton to storage. Called by the Scheduler on Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentPtr = nil
	s.updateCache()
}

// Get returns a pointer to the singleton, or nil if it is not in storage.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return (*T)(s.componentPtr)
}

// Exists returns true if the singleton has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	}
}
