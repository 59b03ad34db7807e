package ecs

import "reflect"

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID) bool
	Has(id EntityID) bool
	Len() int
	Type() reflect.Type
}

// Store is a dense, insertion-ordered table of one component type.
// Pointers returned by Get and by query iteration stay valid until the next
// structural change to this store; structural changes only happen at flush.
type Store[T any] struct {
	typ   reflect.Type
	index map[EntityID]int
	ids   []EntityID
	data  []T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		typ:   TypeOf[T](),
		index: make(map[EntityID]int, 64),
		ids:   make([]EntityID, 0, 64),
		data:  make([]T, 0, 64),
	}
}

// TypeOf returns the reflect key used for component type T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (s *Store[T]) Type() reflect.Type { return s.typ }

// Set inserts or overwrites the component of id. New entries go to the end.
func (s *Store[T]) Set(id EntityID, c T) {
	if i, ok := s.index[id]; ok {
		s.data[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.data[i], true
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// Remove deletes the component of id, shifting later entries down so the
// relative order of the remaining entities is preserved.
func (s *Store[T]) Remove(id EntityID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	copy(s.ids[i:], s.ids[i+1:])
	copy(s.data[i:], s.data[i+1:])
	last := len(s.ids) - 1
	var zero T
	s.data[last] = zero
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	for j := i; j < len(s.ids); j++ {
		s.index[s.ids[j]] = j
	}
	return true
}

func (s *Store[T]) Len() int {
	return len(s.ids)
}

// Entities returns a copy of the ids in insertion order.
func (s *Store[T]) Entities() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}
