package types

import "context"

// Ontology is the collaborator a descriptor synchronizes with: an ontology
// store plus its reasoner.
//
// Query returns the values of kind for subject as seen by the reasoner
// (asserted and inferred). It never returns domain errors; an unknown
// subject yields an empty result.
//
// Assert and Retract change one asserted axiom and report whether the set of
// asserted axioms changed. Asserting an axiom that is already asserted, or
// retracting one that is absent or only inferred, changes nothing. An
// immediate implementation may return ErrInconsistent (usually an
// *InconsistencyError), in which case the change has been applied and the
// caller is expected to revert it.
// A buffered implementation defers reasoning until Reason or Synchronize.
type Ontology interface {
	// Name identifies the ontology reference.
	Name() string

	// Query returns the values of kind for subject.
	Query(ctx context.Context, subject Entity, kind AxiomKind) ([]Object, error)

	// Assert adds the axiom (subject kind obj).
	Assert(ctx context.Context, subject Entity, kind AxiomKind, obj Object) (bool, error)

	// Retract removes the axiom (subject kind obj).
	Retract(ctx context.Context, subject Entity, kind AxiomKind, obj Object) (bool, error)

	// Resolve finds the entity of the given kind and name.
	// Returns ErrUnresolvedEntity if no such entity is declared.
	Resolve(ctx context.Context, kind EntityKind, name string) (Entity, error)

	// NameOf returns the name of a declared entity.
	// Returns ErrUnresolvedEntity if e is not declared.
	NameOf(ctx context.Context, e Entity) (string, error)

	// Reason recomputes inferences and returns ErrInconsistent if the
	// ontology is inconsistent.
	Reason(ctx context.Context) error

	// Synchronize applies buffered changes and refreshes inferences without
	// raising on inconsistency.
	Synchronize(ctx context.Context) error

	// Save exports the ontology to path.
	Save(ctx context.Context, path string) error
}
