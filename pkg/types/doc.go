// Package types defines the ontology collaborator and axiom store interfaces,
// the entity and value types that descriptors synchronize, configuration, and
// the standard error values shared by every owloop package.
//
// Descriptors (package descriptor) never talk to a concrete ontology. They
// call the Ontology interface declared here, passing Entity subjects,
// AxiomKind predicates and flat Object values.
package types
