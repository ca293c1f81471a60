package types

import "fmt"

// EntityKind identifies what an Entity names inside an ontology.
type EntityKind string

// Entity kinds.
const (
	KindClass          EntityKind = "class"
	KindIndividual     EntityKind = "individual"
	KindObjectProperty EntityKind = "object_property"
	KindDataProperty   EntityKind = "data_property"
	KindDatatype       EntityKind = "datatype"
)

// validEntityKinds is the set of recognized entity kinds.
var validEntityKinds = map[EntityKind]bool{
	KindClass:          true,
	KindIndividual:     true,
	KindObjectProperty: true,
	KindDataProperty:   true,
	KindDatatype:       true,
}

// IsValid reports whether k is a recognized entity kind.
func (k EntityKind) IsValid() bool {
	return validEntityKinds[k]
}

// IsProperty reports whether k names an object or data property.
func (k EntityKind) IsProperty() bool {
	return k == KindObjectProperty || k == KindDataProperty
}

// Entity is the handle of a named ontology entity. Two entities are the same
// entity iff kind and name are equal, so Entity is usable as a map key.
type Entity struct {
	Kind EntityKind `json:"kind" yaml:"kind"`
	Name string     `json:"name" yaml:"name"`
}

// Class returns the class entity with the given name.
func Class(name string) Entity { return Entity{Kind: KindClass, Name: name} }

// Individual returns the individual entity with the given name.
func Individual(name string) Entity { return Entity{Kind: KindIndividual, Name: name} }

// ObjectProperty returns the object property entity with the given name.
func ObjectProperty(name string) Entity { return Entity{Kind: KindObjectProperty, Name: name} }

// DataProperty returns the data property entity with the given name.
func DataProperty(name string) Entity { return Entity{Kind: KindDataProperty, Name: name} }

// Datatype returns the datatype entity with the given name (e.g. XSDInteger).
func Datatype(name string) Entity { return Entity{Kind: KindDatatype, Name: name} }

// IsZero reports whether e is the zero Entity.
func (e Entity) IsZero() bool {
	return e.Kind == "" && e.Name == ""
}

// Validate checks that the entity has a known kind and a non-empty name.
func (e Entity) Validate() error {
	if !e.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, e.Kind)
	}
	if e.Name == "" {
		return ErrInvalidName
	}
	return nil
}

func (e Entity) String() string {
	if e.IsZero() {
		return "<none>"
	}
	return string(e.Kind) + ":" + e.Name
}
