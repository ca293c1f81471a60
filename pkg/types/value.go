package types

import (
	"fmt"
	"strconv"
)

// Well-known datatype names used by Literal constructors.
const (
	XSDString  = "xsd:string"
	XSDInteger = "xsd:integer"
	XSDDecimal = "xsd:decimal"
	XSDBoolean = "xsd:boolean"
)

// Literal is a typed data value. Lexical holds the canonical string form.
type Literal struct {
	Lexical  string `json:"lexical" yaml:"lexical"`
	Datatype string `json:"datatype,omitempty" yaml:"datatype,omitempty"`
}

// String returns an xsd:string literal.
func String(v string) Literal { return Literal{Lexical: v, Datatype: XSDString} }

// Integer returns an xsd:integer literal.
func Integer(v int64) Literal {
	return Literal{Lexical: strconv.FormatInt(v, 10), Datatype: XSDInteger}
}

// Decimal returns an xsd:decimal literal.
func Decimal(v float64) Literal {
	return Literal{Lexical: strconv.FormatFloat(v, 'g', -1, 64), Datatype: XSDDecimal}
}

// Boolean returns an xsd:boolean literal.
func Boolean(v bool) Literal {
	return Literal{Lexical: strconv.FormatBool(v), Datatype: XSDBoolean}
}

// IsZero reports whether l is the zero Literal.
func (l Literal) IsZero() bool { return l.Lexical == "" && l.Datatype == "" }

func (l Literal) String() string {
	if l.Datatype == "" {
		return strconv.Quote(l.Lexical)
	}
	return strconv.Quote(l.Lexical) + "^^" + l.Datatype
}

// ObjectLink is one object property assertion seen from its subject:
// subject Property Object.
type ObjectLink struct {
	Property Entity `json:"property"`
	Object   Entity `json:"object"`
}

func (l ObjectLink) String() string { return l.Property.Name + "." + l.Object.Name }

// DataLink is one data property assertion seen from its subject:
// subject Property Value.
type DataLink struct {
	Property Entity  `json:"property"`
	Value    Literal `json:"value"`
}

func (l DataLink) String() string { return l.Property.Name + "." + l.Value.String() }

// RestrictionType is the quantifier of a class restriction.
type RestrictionType string

// Restriction types.
const (
	RestrictSome  RestrictionType = "some"
	RestrictOnly  RestrictionType = "only"
	RestrictMin   RestrictionType = "min"
	RestrictMax   RestrictionType = "max"
	RestrictExact RestrictionType = "exact"
)

// IsValid reports whether t is a recognized restriction type.
func (t RestrictionType) IsValid() bool {
	switch t {
	case RestrictSome, RestrictOnly, RestrictMin, RestrictMax, RestrictExact:
		return true
	}
	return false
}

// Counted reports whether the restriction carries a cardinality.
func (t RestrictionType) Counted() bool {
	return t == RestrictMin || t == RestrictMax || t == RestrictExact
}

// Restriction is one conjunct of a class definition, e.g.
// "hasWheel min 2 Wheel" or "hasAge some xsd:integer". A zero Filler means
// any value (owl:Thing or rdfs:Literal).
type Restriction struct {
	Type        RestrictionType `json:"type" yaml:"type"`
	Property    Entity          `json:"property" yaml:"property"`
	Filler      Entity          `json:"filler,omitempty" yaml:"filler,omitempty"`
	Cardinality int             `json:"cardinality,omitempty" yaml:"cardinality,omitempty"`
}

// Validate checks the restriction shape. Object property restrictions take a
// class filler, data property restrictions a datatype filler.
func (r Restriction) Validate() error {
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: restriction type %q", ErrInvalidValue, r.Type)
	}
	if !r.Property.Kind.IsProperty() || r.Property.Name == "" {
		return fmt.Errorf("%w: restriction property %s", ErrInvalidValue, r.Property)
	}
	if !r.Filler.IsZero() {
		want := KindClass
		if r.Property.Kind == KindDataProperty {
			want = KindDatatype
		}
		if r.Filler.Kind != want {
			return fmt.Errorf("%w: filler %s for %s", ErrInvalidValue, r.Filler, r.Property)
		}
	}
	if r.Type.Counted() && r.Cardinality < 0 {
		return fmt.Errorf("%w: negative cardinality", ErrInvalidValue)
	}
	return nil
}

func (r Restriction) String() string {
	s := r.Property.Name + " " + string(r.Type)
	if r.Type.Counted() {
		s += " " + strconv.Itoa(r.Cardinality)
	}
	if !r.Filler.IsZero() {
		s += " " + r.Filler.Name
	}
	return s
}

// Characteristic is a property characteristic such as functional or
// transitive.
type Characteristic string

// Property characteristics. Data properties accept only Functional.
const (
	Functional        Characteristic = "functional"
	InverseFunctional Characteristic = "inverse_functional"
	Transitive        Characteristic = "transitive"
	Symmetric         Characteristic = "symmetric"
	Asymmetric        Characteristic = "asymmetric"
	Reflexive         Characteristic = "reflexive"
	Irreflexive       Characteristic = "irreflexive"
)

// validCharacteristics maps each characteristic to the property kinds that
// accept it.
var validCharacteristics = map[Characteristic][]EntityKind{
	Functional:        {KindObjectProperty, KindDataProperty},
	InverseFunctional: {KindObjectProperty},
	Transitive:        {KindObjectProperty},
	Symmetric:         {KindObjectProperty},
	Asymmetric:        {KindObjectProperty},
	Reflexive:         {KindObjectProperty},
	Irreflexive:       {KindObjectProperty},
}

// AppliesTo reports whether c may be declared on a property of kind k.
func (c Characteristic) AppliesTo(k EntityKind) bool {
	for _, allowed := range validCharacteristics[c] {
		if allowed == k {
			return true
		}
	}
	return false
}
