package ecs

import "errors"

var (
	// ErrStaleEntity is returned when a command targets an entity that no longer exists.
	ErrStaleEntity = errors.New("ecs: stale entity")
	// ErrAliasedQueries is returned when two queries that may match the same entity
	// are paired while at least one of them is writable.
	ErrAliasedQueries = errors.New("ecs: queries may alias a mutable component")
	// ErrStructuralChange is the panic value for direct structural mutation during iteration.
	ErrStructuralChange = errors.New("ecs: structural change while a query is iterating")
)
