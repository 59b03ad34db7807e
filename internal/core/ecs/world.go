package ecs

import "fmt"

// World is the top-level ECS container. It owns the entity pool and the
// component registry. Systems never mutate it directly while ticking; they
// record Commands which the scheduler applies between ticks.
type World struct {
	pool      *EntityPool
	registry  *Registry
	iterating int
}

func NewWorld() *World {
	return &World{
		pool:     NewEntityPool(),
		registry: NewRegistry(),
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

// Spawn allocates a new entity with no components.
func (w *World) Spawn() EntityID {
	w.guard()
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// Despawn removes every component of id and retires the id.
// Despawning a dead entity is a no-op and reports false.
func (w *World) Despawn(id EntityID) bool {
	w.guard()
	if !w.pool.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id)
	return w.pool.Destroy(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.pool.Live()
}

// Apply executes every queued command in submission order and resets the
// buffer. A failing command does not stop the ones after it.
func (w *World) Apply(c *Commands) error {
	return c.apply(w)
}

func (w *World) guard() {
	if w.iterating > 0 {
		panic(ErrStructuralChange)
	}
}

func (w *World) beginIter() { w.iterating++ }
func (w *World) endIter()   { w.iterating-- }

// StoreOf returns the store for component type T, creating and registering it
// on first use.
func StoreOf[T any](w *World) *Store[T] {
	if s, ok := w.registry.Lookup(TypeOf[T]()); ok {
		return s.(*Store[T])
	}
	s := NewStore[T]()
	w.registry.Register(s)
	return s
}

// Set attaches c to id, replacing any existing T.
func Set[T any](w *World, id EntityID, c T) error {
	w.guard()
	if !w.pool.Alive(id) {
		return fmt.Errorf("insert %s on %s: %w", TypeOf[T](), id, ErrStaleEntity)
	}
	StoreOf[T](w).Set(id, c)
	return nil
}

// Remove detaches T from id. Removing an absent component is a no-op.
func Remove[T any](w *World, id EntityID) error {
	w.guard()
	if !w.pool.Alive(id) {
		return fmt.Errorf("remove %s from %s: %w", TypeOf[T](), id, ErrStaleEntity)
	}
	StoreOf[T](w).Remove(id)
	return nil
}

// Get returns a pointer to the T of id.
func Get[T any](w *World, id EntityID) (*T, bool) {
	s, ok := w.registry.Lookup(TypeOf[T]())
	if !ok {
		return nil, false
	}
	return s.(*Store[T]).Get(id)
}

// Has reports whether id carries a T.
func Has[T any](w *World, id EntityID) bool {
	s, ok := w.registry.Lookup(TypeOf[T]())
	return ok && s.Has(id)
}
