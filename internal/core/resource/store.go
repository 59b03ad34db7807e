// Package resource holds process-wide singletons, one per Go type, handed
// to systems through borrow scopes that last one system run.
package resource

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	// ErrBorrowConflict is the panic cause when a borrow overlaps an incompatible one.
	ErrBorrowConflict = errors.New("resource: borrow conflict")
	// ErrMissingResource is the panic cause when a system asks for an uninitialised resource.
	ErrMissingResource = errors.New("resource: missing")
	// ErrDuplicateResource is returned by Insert when the type already has a slot.
	ErrDuplicateResource = errors.New("resource: already inserted")
)

// Mode is the access a borrow takes.
type Mode uint8

const (
	Read Mode = iota
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

type slot struct {
	value   any // always a pointer to the resource
	readers int
	writer  string
}

// Store owns one slot per resource type.
type Store struct {
	mu    sync.Mutex
	slots map[reflect.Type]*slot
}

func NewStore() *Store {
	return &Store{slots: make(map[reflect.Type]*slot, 16)}
}

func typeOf[R any]() reflect.Type {
	return reflect.TypeOf((*R)(nil)).Elem()
}

// Insert creates the slot for R with the given initial value.
func Insert[R any](s *Store, v R) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := typeOf[R]()
	if _, ok := s.slots[t]; ok {
		return fmt.Errorf("%s: %w", t, ErrDuplicateResource)
	}
	p := new(R)
	*p = v
	s.slots[t] = &slot{value: p}
	return nil
}

// InsertDefault creates the slot for R holding its zero value, unless one exists.
func InsertDefault[R any](s *Store) {
	var zero R
	_ = Insert(s, zero)
}

// Set overwrites R from the host between ticks, creating the slot if needed.
// It panics if any system currently borrows R.
func Set[R any](s *Store, v R) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := typeOf[R]()
	sl, ok := s.slots[t]
	if !ok {
		p := new(R)
		*p = v
		s.slots[t] = &slot{value: p}
		return
	}
	if sl.readers > 0 || sl.writer != "" {
		panic(fmt.Errorf("set %s while borrowed: %w", t, ErrBorrowConflict))
	}
	*sl.value.(*R) = v
}

// Has reports whether R has been inserted.
func Has[R any](s *Store) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.slots[typeOf[R]()]
	return ok
}

// Peek returns a copy of R outside any scope, for hosts and tests.
func Peek[R any](s *Store) (R, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[typeOf[R]()]
	if !ok {
		var zero R
		return zero, false
	}
	return *sl.value.(*R), true
}

// Begin opens a borrow scope for one system run.
func (s *Store) Begin(owner string) *Scope {
	return &Scope{store: s, owner: owner, held: make(map[reflect.Type]Mode, 4)}
}

// Scope collects the borrows taken by one system during one run. End
// releases all of them.
type Scope struct {
	store *Store
	owner string
	held  map[reflect.Type]Mode
}

func (sc *Scope) Owner() string { return sc.owner }

// End releases every borrow held by the scope.
func (sc *Scope) End() {
	s := sc.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for t, m := range sc.held {
		sl := s.slots[t]
		if m == Write {
			sl.writer = ""
		} else {
			sl.readers--
		}
	}
	clear(sc.held)
}

func (sc *Scope) borrow(t reflect.Type, m Mode) any {
	s := sc.store
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.slots[t]
	if !ok {
		panic(fmt.Errorf("%s requested by %s: %w", t, sc.owner, ErrMissingResource))
	}
	if prev, ok := sc.held[t]; ok {
		if prev != m {
			panic(fmt.Errorf("%s takes %s after %s on %s: %w", sc.owner, m, prev, t, ErrBorrowConflict))
		}
		return sl.value
	}
	switch m {
	case Write:
		if sl.writer != "" || sl.readers > 0 {
			panic(fmt.Errorf("%s wants write on %s held by %q/%d readers: %w",
				sc.owner, t, sl.writer, sl.readers, ErrBorrowConflict))
		}
		sl.writer = sc.owner
	default:
		if sl.writer != "" {
			panic(fmt.Errorf("%s wants read on %s written by %q: %w", sc.owner, t, sl.writer, ErrBorrowConflict))
		}
		sl.readers++
	}
	sc.held[t] = m
	return sl.value
}

// Get borrows R for reading and returns a copy of it.
func Get[R any](sc *Scope) R {
	return *sc.borrow(typeOf[R](), Read).(*R)
}

// Mut borrows R exclusively and returns a pointer valid until sc.End.
func Mut[R any](sc *Scope) *R {
	return sc.borrow(typeOf[R](), Write).(*R)
}
