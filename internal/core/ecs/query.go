package ecs

import (
	"fmt"
	"iter"
	"reflect"
)

// QueryOption narrows or annotates a query.
type QueryOption interface {
	apply(*filter)
}

type optionFunc func(*filter)

func (f optionFunc) apply(fl *filter) { f(fl) }

// With requires the entity to carry a T without reading it. Marker
// components such as Bullet are typically used this way.
func With[T any]() QueryOption {
	return optionFunc(func(f *filter) { f.with = append(f.with, TypeOf[T]()) })
}

// Without rejects entities carrying a T.
func Without[T any]() QueryOption {
	return optionFunc(func(f *filter) { f.without = append(f.without, TypeOf[T]()) })
}

// ReadOnly declares that the caller will not write through the yielded pointers.
// Read-only queries never conflict with each other.
func ReadOnly() QueryOption {
	return optionFunc(func(f *filter) { f.readOnly = true })
}

type filter struct {
	data     []reflect.Type
	with     []reflect.Type
	without  []reflect.Type
	readOnly bool
}

func newFilter(data []reflect.Type, opts []QueryOption) filter {
	f := filter{data: data}
	for _, o := range opts {
		o.apply(&f)
	}
	return f
}

func (f *filter) match(w *World, id EntityID) bool {
	for _, t := range f.data[1:] {
		if s, ok := w.registry.Lookup(t); !ok || !s.Has(id) {
			return false
		}
	}
	for _, t := range f.with {
		if s, ok := w.registry.Lookup(t); !ok || !s.Has(id) {
			return false
		}
	}
	for _, t := range f.without {
		if s, ok := w.registry.Lookup(t); ok && s.Has(id) {
			return false
		}
	}
	return true
}

func (f *filter) requires(t reflect.Type) bool {
	for _, d := range f.data {
		if d == t {
			return true
		}
	}
	for _, d := range f.with {
		if d == t {
			return true
		}
	}
	return false
}

// Shape is the static description of a query: which components it reads,
// which it requires, which it excludes.
type Shape interface {
	shape() *filter
}

// Disjoint reports whether no entity can ever match both a and b, i.e. a
// component required by one query is excluded by the other.
func Disjoint(a, b Shape) bool {
	fa, fb := a.shape(), b.shape()
	for _, t := range fb.without {
		if fa.requires(t) {
			return true
		}
	}
	for _, t := range fa.without {
		if fb.requires(t) {
			return true
		}
	}
	return false
}

// Query iterates entities carrying a T that satisfy its filters, in the
// insertion order of T's store.
type Query[T any] struct {
	w *World
	f filter
}

func NewQuery[T any](w *World, opts ...QueryOption) *Query[T] {
	return &Query[T]{w: w, f: newFilter([]reflect.Type{TypeOf[T]()}, opts)}
}

func (q *Query[T]) shape() *filter { return &q.f }

// Iter yields every matching entity with a pointer to its T. Structural
// changes to the world panic until the iteration ends.
func (q *Query[T]) Iter() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		s := StoreOf[T](q.w)
		q.w.beginIter()
		defer q.w.endIter()
		for i, id := range s.ids {
			if !q.f.match(q.w, id) {
				continue
			}
			if !yield(id, &s.data[i]) {
				return
			}
		}
	}
}

// Single returns the first match. ok is false when nothing matches.
func (q *Query[T]) Single() (id EntityID, c *T, ok bool) {
	for id, c := range q.Iter() {
		return id, c, true
	}
	return 0, nil, false
}

// MustSingle is Single for callers whose precondition guarantees a match.
func (q *Query[T]) MustSingle() (EntityID, *T) {
	id, c, ok := q.Single()
	if !ok {
		panic(fmt.Sprintf("ecs: no entity matches query over %s", q.f.data[0]))
	}
	return id, c
}

func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}

// Query2 iterates entities carrying both an A and a B.
type Query2[A, B any] struct {
	w *World
	f filter
}

func NewQuery2[A, B any](w *World, opts ...QueryOption) *Query2[A, B] {
	return &Query2[A, B]{w: w, f: newFilter([]reflect.Type{TypeOf[A](), TypeOf[B]()}, opts)}
}

func (q *Query2[A, B]) shape() *filter { return &q.f }

// Each calls fn for every match in the insertion order of A's store.
func (q *Query2[A, B]) Each(fn func(EntityID, *A, *B)) {
	sa, sb := StoreOf[A](q.w), StoreOf[B](q.w)
	q.w.beginIter()
	defer q.w.endIter()
	for i, id := range sa.ids {
		if !q.f.match(q.w, id) {
			continue
		}
		b, _ := sb.Get(id)
		fn(id, &sa.data[i], b)
	}
}

// DisjointPair holds two queries proven never to match the same entity, so
// a system may iterate one inside the other and write through either.
type DisjointPair[A, B any] struct {
	Left  *Query[A]
	Right *Query[B]
}

func NewDisjointPair[A, B any](left *Query[A], right *Query[B]) (*DisjointPair[A, B], error) {
	if !(left.f.readOnly && right.f.readOnly) && !Disjoint(left, right) {
		return nil, fmt.Errorf("pair %s/%s: %w", left.f.data[0], right.f.data[0], ErrAliasedQueries)
	}
	return &DisjointPair[A, B]{Left: left, Right: right}, nil
}
