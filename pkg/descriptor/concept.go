package descriptor

import (
	"context"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Concept describes a class with every class capability.
type Concept struct {
	*Descriptor
	Definition *Capability[types.Restriction]
	Sub        *Capability[types.Entity]
	Super      *Capability[types.Entity]
	Equivalent *Capability[types.Entity]
	Disjoint   *Capability[types.Entity]
	Instances  *Capability[types.Entity]
}

// NewConcept grounds a Concept on the class called name.
func NewConcept(ctx context.Context, onto types.Ontology, name string) (*Concept, error) {
	g, err := NewGround(ctx, onto, types.KindClass, name)
	if err != nil {
		return nil, err
	}
	return ConceptOn(g), nil
}

// ConceptOn builds a Concept over g. It is usable as a Build factory.
func ConceptOn(g *Ground) *Concept {
	c := &Concept{
		Definition: Definition(g),
		Sub:        SubClasses(g),
		Super:      SuperClasses(g),
		Equivalent: EquivalentClasses(g),
		Disjoint:   DisjointClasses(g),
		Instances:  Instances(g),
	}
	c.Descriptor = NewDescriptor(g, c.Definition, c.Sub, c.Super, c.Equivalent, c.Disjoint, c.Instances)
	return c
}
