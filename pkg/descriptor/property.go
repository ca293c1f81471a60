package descriptor

import (
	"context"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// ObjectProperty describes an object property with every property
// capability.
type ObjectProperty struct {
	*Descriptor
	Sub             *Capability[types.Entity]
	Super           *Capability[types.Entity]
	Equivalent      *Capability[types.Entity]
	Disjoint        *Capability[types.Entity]
	Inverse         *Capability[types.Entity]
	Domain          *Capability[types.Entity]
	Range           *Capability[types.Entity]
	Characteristics *Capability[types.Characteristic]
}

// NewObjectProperty grounds an ObjectProperty on the property called name.
func NewObjectProperty(ctx context.Context, onto types.Ontology, name string) (*ObjectProperty, error) {
	g, err := NewGround(ctx, onto, types.KindObjectProperty, name)
	if err != nil {
		return nil, err
	}
	return ObjectPropertyOn(g), nil
}

// ObjectPropertyOn builds an ObjectProperty over g.
func ObjectPropertyOn(g *Ground) *ObjectProperty {
	p := &ObjectProperty{
		Sub:             SubProperties(g),
		Super:           SuperProperties(g),
		Equivalent:      EquivalentProperties(g),
		Disjoint:        DisjointProperties(g),
		Inverse:         Inverse(g),
		Domain:          Domain(g),
		Range:           Range(g),
		Characteristics: Characteristics(g),
	}
	p.Descriptor = NewDescriptor(g, p.Sub, p.Super, p.Equivalent, p.Disjoint,
		p.Inverse, p.Domain, p.Range, p.Characteristics)
	return p
}

// DataProperty describes a data property with every data property
// capability.
type DataProperty struct {
	*Descriptor
	Sub             *Capability[types.Entity]
	Super           *Capability[types.Entity]
	Equivalent      *Capability[types.Entity]
	Disjoint        *Capability[types.Entity]
	Domain          *Capability[types.Entity]
	Range           *Capability[types.Entity]
	Characteristics *Capability[types.Characteristic]
}

// NewDataProperty grounds a DataProperty on the property called name.
func NewDataProperty(ctx context.Context, onto types.Ontology, name string) (*DataProperty, error) {
	g, err := NewGround(ctx, onto, types.KindDataProperty, name)
	if err != nil {
		return nil, err
	}
	return DataPropertyOn(g), nil
}

// DataPropertyOn builds a DataProperty over g.
func DataPropertyOn(g *Ground) *DataProperty {
	p := &DataProperty{
		Sub:             SubProperties(g),
		Super:           SuperProperties(g),
		Equivalent:      EquivalentProperties(g),
		Disjoint:        DisjointProperties(g),
		Domain:          Domain(g),
		Range:           Range(g),
		Characteristics: Characteristics(g),
	}
	p.Descriptor = NewDescriptor(g, p.Sub, p.Super, p.Equivalent, p.Disjoint,
		p.Domain, p.Range, p.Characteristics)
	return p
}
