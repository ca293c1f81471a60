package ontology

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Fixture is a declarative ontology seed:
//
//	entities:
//	  class: [Robot, Machine]
//	  individual: [Robot1]
//	axioms:
//	  - subject: class:Robot
//	    kind: super_class
//	    entity: class:Machine
//	  - subject: class:Robot
//	    kind: definition
//	    restriction: min
//	    cardinality: 2
//	    property: object_property:hasWheel
//	    entity: class:Wheel
//	  - subject: individual:Robot1
//	    kind: data_link
//	    property: data_property:age
//	    literal: {lexical: "3", datatype: "xsd:integer"}
//
// Entity references are written kind:name.
type Fixture struct {
	Entities map[types.EntityKind][]string `yaml:"entities"`
	Axioms   []FixtureAxiom                `yaml:"axioms"`
}

// FixtureAxiom is one axiom of a fixture. The value fields mirror
// types.Object.
type FixtureAxiom struct {
	Subject        string                `yaml:"subject"`
	Kind           types.AxiomKind       `yaml:"kind"`
	Entity         string                `yaml:"entity,omitempty"`
	Property       string                `yaml:"property,omitempty"`
	Literal        types.Literal         `yaml:"literal,omitempty"`
	Restriction    types.RestrictionType `yaml:"restriction,omitempty"`
	Cardinality    int                   `yaml:"cardinality,omitempty"`
	Characteristic types.Characteristic  `yaml:"characteristic,omitempty"`
}

// entityKindOrder fixes the declaration order of fixture entities.
var entityKindOrder = []types.EntityKind{
	types.KindClass,
	types.KindObjectProperty,
	types.KindDataProperty,
	types.KindDatatype,
	types.KindIndividual,
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidFixture, err)
	}
	for kind := range f.Entities {
		if !kind.IsValid() {
			return nil, fmt.Errorf("%w: entity kind %q", types.ErrInvalidFixture, kind)
		}
	}
	return &f, nil
}

// LoadFixture reads and decodes a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return ParseFixture(data)
}

func parseEntity(ref string) (types.Entity, error) {
	if ref == "" {
		return types.Entity{}, nil
	}
	kind, name, ok := strings.Cut(ref, ":")
	e := types.Entity{Kind: types.EntityKind(kind), Name: name}
	if !ok {
		return e, fmt.Errorf("%w: entity %q is not kind:name", types.ErrInvalidFixture, ref)
	}
	if err := e.Validate(); err != nil {
		return e, fmt.Errorf("%w: entity %q: %v", types.ErrInvalidFixture, ref, err)
	}
	return e, nil
}

// Object converts the value fields of a into a types.Object.
func (a FixtureAxiom) Object() (types.Object, error) {
	entity, err := parseEntity(a.Entity)
	if err != nil {
		return types.Object{}, err
	}
	prop, err := parseEntity(a.Property)
	if err != nil {
		return types.Object{}, err
	}
	return types.Object{
		Entity:         entity,
		Property:       prop,
		Literal:        a.Literal,
		Restriction:    a.Restriction,
		Cardinality:    a.Cardinality,
		Characteristic: a.Characteristic,
	}, nil
}

// Apply declares the fixture entities in ref and asserts its axioms in
// order. It stops at the first failing axiom.
func (f *Fixture) Apply(ctx context.Context, ref *Reference) error {
	var entities []types.Entity
	for _, kind := range entityKindOrder {
		for _, name := range f.Entities[kind] {
			entities = append(entities, types.Entity{Kind: kind, Name: name})
		}
	}
	if err := ref.Declare(ctx, entities...); err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidFixture, err)
	}

	for i, a := range f.Axioms {
		subject, err := parseEntity(a.Subject)
		if err != nil {
			return fmt.Errorf("axiom %d: %w", i, err)
		}
		if !a.Kind.IsValid() {
			return fmt.Errorf("axiom %d: %w: kind %q", i, types.ErrInvalidFixture, a.Kind)
		}
		obj, err := a.Object()
		if err != nil {
			return fmt.Errorf("axiom %d: %w", i, err)
		}
		if _, err := ref.Assert(ctx, subject, a.Kind, obj); err != nil {
			return fmt.Errorf("axiom %d (%s %s %s): %w", i, subject, a.Kind, obj, err)
		}
	}
	return nil
}
