package descriptor

import (
	"context"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Individual describes an individual with every individual capability.
type Individual struct {
	*Descriptor
	Types       *Capability[types.Entity]
	Same        *Capability[types.Entity]
	Different   *Capability[types.Entity]
	ObjectLinks *Capability[types.ObjectLink]
	DataLinks   *Capability[types.DataLink]
}

// NewIndividual grounds an Individual on the individual called name.
func NewIndividual(ctx context.Context, onto types.Ontology, name string) (*Individual, error) {
	g, err := NewGround(ctx, onto, types.KindIndividual, name)
	if err != nil {
		return nil, err
	}
	return IndividualOn(g), nil
}

// IndividualOn builds an Individual over g. It is usable as a Build factory.
func IndividualOn(g *Ground) *Individual {
	i := &Individual{
		Types:       Types(g),
		Same:        SameIndividuals(g),
		Different:   DifferentIndividuals(g),
		ObjectLinks: ObjectLinks(g),
		DataLinks:   DataLinks(g),
	}
	i.Descriptor = NewDescriptor(g, i.Types, i.Same, i.Different, i.ObjectLinks, i.DataLinks)
	return i
}

// ObjectValues returns the individuals linked through property, in member
// order.
func (i *Individual) ObjectValues(property types.Entity) []types.Entity {
	var out []types.Entity
	for _, l := range i.ObjectLinks.Members() {
		if l.Property == property {
			out = append(out, l.Object)
		}
	}
	return out
}

// DataValues returns the literals linked through property, in member order.
func (i *Individual) DataValues(property types.Entity) []types.Literal {
	var out []types.Literal
	for _, l := range i.DataLinks.Members() {
		if l.Property == property {
			out = append(out, l.Value)
		}
	}
	return out
}
