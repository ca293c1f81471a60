// Package descriptor keeps in-memory sets of ontology axioms synchronized
// with a types.Ontology.
//
// A descriptor is bound to one entity through a Ground and holds one or more
// capabilities. Each Capability mirrors the values of one axiom kind (the
// super classes of a class, the types of an individual, ...) in an EntitySet
// and exposes four operations:
//
//   - ReadSemantic replaces the set with what the ontology reports and
//     returns the differences as MappingIntents.
//   - WriteSemantic asserts pending additions and retracts pending removals.
//   - WriteSemanticSafe does the same but, when the ontology turns
//     inconsistent, reverts every applied change and reads back.
//   - Query returns what ReadSemantic would load without touching the set.
//
// Build expands the members of a capability into freshly grounded
// descriptors, which is how callers walk a hierarchy:
//
//	robot, _ := descriptor.NewIndividual(ctx, onto, "Robot1")
//	robot.Types.ReadSemantic(ctx)
//	classes, _ := descriptor.Build(ctx, robot.Types, descriptor.ConceptOn)
//
// Nothing in this package locks. Descriptors are meant to be used from one
// goroutine; the Ontology implementation guards shared state.
package descriptor
