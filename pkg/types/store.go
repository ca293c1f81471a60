package types

import "context"

// AxiomFilter selects stored axioms. Zero fields match anything.
type AxiomFilter struct {
	Subject   Entity
	Predicate Predicate
}

// Matches reports whether a satisfies the filter.
func (f AxiomFilter) Matches(a Axiom) bool {
	if !f.Subject.IsZero() && a.Subject != f.Subject {
		return false
	}
	if f.Predicate != "" && a.Predicate != f.Predicate {
		return false
	}
	return true
}

// AxiomStore persists the asserted part of an ontology: declared entities
// and asserted axioms. Stores know nothing about reasoning.
type AxiomStore interface {
	// Declare records an entity. Declaring an existing entity is a no-op.
	Declare(ctx context.Context, e Entity) error

	// Entities returns every declared entity in declaration order.
	Entities(ctx context.Context) ([]Entity, error)

	// Insert stores a. It returns false when an axiom with the same
	// statement already exists.
	Insert(ctx context.Context, a Axiom) (bool, error)

	// Delete removes the axiom with statement s. It returns false when no
	// such axiom exists.
	Delete(ctx context.Context, s Statement) (bool, error)

	// Axioms returns the stored axioms matching f in insertion order.
	Axioms(ctx context.Context, f AxiomFilter) ([]Axiom, error)

	// Flush persists pending writes.
	Flush(ctx context.Context) error

	// Close flushes and releases resources. Close is idempotent.
	Close() error
}
