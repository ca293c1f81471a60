package types

import (
	"time"

	"github.com/google/uuid"
)

// AxiomKind names a descriptor-level relation between a subject entity and
// a set of values, e.g. the super classes of a class or the types of an
// individual.
type AxiomKind string

// Class axiom kinds.
const (
	KindSubClass        AxiomKind = "sub_class"
	KindSuperClass      AxiomKind = "super_class"
	KindEquivalentClass AxiomKind = "equivalent_class"
	KindDisjointClass   AxiomKind = "disjoint_class"
	KindInstance        AxiomKind = "instance"
	KindDefinition      AxiomKind = "definition"
)

// Individual axiom kinds.
const (
	KindType                AxiomKind = "type"
	KindSameIndividual      AxiomKind = "same_individual"
	KindDifferentIndividual AxiomKind = "different_individual"
	KindObjectLink          AxiomKind = "object_link"
	KindDataLink            AxiomKind = "data_link"
)

// Property axiom kinds.
const (
	KindSubProperty        AxiomKind = "sub_property"
	KindSuperProperty      AxiomKind = "super_property"
	KindEquivalentProperty AxiomKind = "equivalent_property"
	KindDisjointProperty   AxiomKind = "disjoint_property"
	KindInverseProperty    AxiomKind = "inverse_property"
	KindDomain             AxiomKind = "domain"
	KindRange              AxiomKind = "range"
	KindCharacteristic     AxiomKind = "characteristic"
)

// Predicate is the stored form of an axiom. Several axiom kinds map onto one
// predicate read in either direction: sub_class and super_class are both
// stored as subClassOf.
type Predicate string

// Stored predicates.
const (
	PredSubClassOf           Predicate = "subClassOf"
	PredEquivalentClass      Predicate = "equivalentClass"
	PredDisjointWith         Predicate = "disjointWith"
	PredDefinition           Predicate = "definition"
	PredType                 Predicate = "type"
	PredSameAs               Predicate = "sameAs"
	PredDifferentFrom        Predicate = "differentFrom"
	PredObjectLink           Predicate = "objectLink"
	PredDataLink             Predicate = "dataLink"
	PredSubPropertyOf        Predicate = "subPropertyOf"
	PredEquivalentProperty   Predicate = "equivalentProperty"
	PredPropertyDisjointWith Predicate = "propertyDisjointWith"
	PredInverseOf            Predicate = "inverseOf"
	PredDomain               Predicate = "domain"
	PredRange                Predicate = "range"
	PredCharacteristic       Predicate = "characteristic"
)

// axiomShape describes how an axiom kind is stored.
type axiomShape struct {
	predicate Predicate
	// reversed kinds store (value, predicate, subject).
	reversed bool
	subjects []EntityKind
	// values is the kind of entity values; empty for non-entity values.
	values []EntityKind
}

var (
	classes    = []EntityKind{KindClass}
	individual = []EntityKind{KindIndividual}
	properties = []EntityKind{KindObjectProperty, KindDataProperty}
	objectProp = []EntityKind{KindObjectProperty}
	ranges     = []EntityKind{KindClass, KindDatatype}
)

var axiomShapes = map[AxiomKind]axiomShape{
	KindSubClass:            {predicate: PredSubClassOf, reversed: true, subjects: classes, values: classes},
	KindSuperClass:          {predicate: PredSubClassOf, subjects: classes, values: classes},
	KindEquivalentClass:     {predicate: PredEquivalentClass, subjects: classes, values: classes},
	KindDisjointClass:       {predicate: PredDisjointWith, subjects: classes, values: classes},
	KindInstance:            {predicate: PredType, reversed: true, subjects: classes, values: individual},
	KindDefinition:          {predicate: PredDefinition, subjects: classes},
	KindType:                {predicate: PredType, subjects: individual, values: classes},
	KindSameIndividual:      {predicate: PredSameAs, subjects: individual, values: individual},
	KindDifferentIndividual: {predicate: PredDifferentFrom, subjects: individual, values: individual},
	KindObjectLink:          {predicate: PredObjectLink, subjects: individual},
	KindDataLink:            {predicate: PredDataLink, subjects: individual},
	KindSubProperty:         {predicate: PredSubPropertyOf, reversed: true, subjects: properties},
	KindSuperProperty:       {predicate: PredSubPropertyOf, subjects: properties},
	KindEquivalentProperty:  {predicate: PredEquivalentProperty, subjects: properties},
	KindDisjointProperty:    {predicate: PredPropertyDisjointWith, subjects: properties},
	KindInverseProperty:     {predicate: PredInverseOf, subjects: objectProp, values: objectProp},
	KindDomain:              {predicate: PredDomain, subjects: properties, values: classes},
	KindRange:               {predicate: PredRange, subjects: properties, values: ranges},
	KindCharacteristic:      {predicate: PredCharacteristic, subjects: properties},
}

// IsValid reports whether k is a recognized axiom kind.
func (k AxiomKind) IsValid() bool {
	_, ok := axiomShapes[k]
	return ok
}

// Predicate returns the stored predicate for k.
func (k AxiomKind) Predicate() Predicate { return axiomShapes[k].predicate }

// Reversed reports whether k is stored with subject and value swapped.
func (k AxiomKind) Reversed() bool { return axiomShapes[k].reversed }

// AppliesTo reports whether k may be used on a subject of entity kind ek.
func (k AxiomKind) AppliesTo(ek EntityKind) bool {
	for _, s := range axiomShapes[k].subjects {
		if s == ek {
			return true
		}
	}
	return false
}

// EntityValued reports whether the values of k are plain entities.
func (k AxiomKind) EntityValued() bool {
	switch k {
	case KindSubProperty, KindSuperProperty, KindEquivalentProperty, KindDisjointProperty:
		return true
	}
	return len(axiomShapes[k].values) > 0
}

// CheckValue validates obj as a value of k asserted on subject.
func (k AxiomKind) CheckValue(subject Entity, obj Object) error {
	shape, ok := axiomShapes[k]
	if !ok {
		return ErrKindMismatch
	}
	switch k {
	case KindSubProperty, KindSuperProperty, KindEquivalentProperty, KindDisjointProperty:
		if obj.Entity.Kind != subject.Kind || obj.Entity.Name == "" {
			return ErrInvalidValue
		}
		return nil
	case KindRange:
		want := KindClass
		if subject.Kind == KindDataProperty {
			want = KindDatatype
		}
		if obj.Entity.Kind != want || obj.Entity.Name == "" {
			return ErrInvalidValue
		}
		return nil
	case KindDefinition:
		return DecodeRestriction(obj).Validate()
	case KindCharacteristic:
		if !obj.Characteristic.AppliesTo(subject.Kind) {
			return ErrInvalidValue
		}
		return nil
	case KindObjectLink:
		if obj.Property.Kind != KindObjectProperty || obj.Entity.Kind != KindIndividual {
			return ErrInvalidValue
		}
		return nil
	case KindDataLink:
		if obj.Property.Kind != KindDataProperty || obj.Literal.IsZero() {
			return ErrInvalidValue
		}
		return nil
	}
	for _, v := range shape.values {
		if obj.Entity.Kind == v && obj.Entity.Name != "" {
			return nil
		}
	}
	return ErrInvalidValue
}

// Axiom is one stored statement: Subject Predicate Object. Entity-valued
// statements keep the object entity in Object.Entity.
type Axiom struct {
	ID        string    `json:"axiom_id"`
	Subject   Entity    `json:"subject"`
	Predicate Predicate `json:"predicate"`
	Object    Object    `json:"object"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAxiom returns an axiom with a fresh UUID v7 and the current time.
func NewAxiom(subject Entity, pred Predicate, obj Object) Axiom {
	return Axiom{
		ID:        NewID(),
		Subject:   subject,
		Predicate: pred,
		Object:    obj,
		CreatedAt: time.Now().UTC(),
	}
}

// Statement returns the identity of the axiom without ID or time.
func (a Axiom) Statement() Statement {
	return Statement{Subject: a.Subject, Predicate: a.Predicate, Object: a.Object}
}

// Statement is the comparable identity of an axiom.
type Statement struct {
	Subject   Entity
	Predicate Predicate
	Object    Object
}

// Key returns a stable textual identity for s.
func (s Statement) Key() string {
	return joinKey(string(s.Subject.Kind), s.Subject.Name, string(s.Predicate), s.Object.Key())
}

// StatementOf maps a descriptor-level (subject, kind, value) triple onto its
// stored statement, swapping ends for reversed kinds.
func StatementOf(subject Entity, kind AxiomKind, obj Object) Statement {
	if kind.Reversed() {
		return Statement{Subject: obj.Entity, Predicate: kind.Predicate(), Object: EncodeEntity(subject)}
	}
	return Statement{Subject: subject, Predicate: kind.Predicate(), Object: obj}
}

// NewID generates a UUID v7, falling back to v4.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
