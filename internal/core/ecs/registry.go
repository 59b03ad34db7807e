package ecs

import "reflect"

// Registry tracks all component stores and supports bulk cleanup on entity destroy.
type Registry struct {
	byType map[reflect.Type]Removable
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]Removable, 16),
		stores: make([]Removable, 0, 16),
	}
}

// Register adds a component store to the registry. A second store for the
// same component type replaces nothing and is ignored.
func (r *Registry) Register(store Removable) {
	if _, ok := r.byType[store.Type()]; ok {
		return
	}
	r.byType[store.Type()] = store
	r.stores = append(r.stores, store)
}

// Lookup returns the store registered for t.
func (r *Registry) Lookup(t reflect.Type) (Removable, bool) {
	s, ok := r.byType[t]
	return s, ok
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
}

// Len returns the number of registered component types.
func (r *Registry) Len() int {
	return len(r.stores)
}
