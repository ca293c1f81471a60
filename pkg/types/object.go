package types

import (
	"strconv"
	"strings"
)

// Object is the flat, comparable value exchanged with an Ontology. Exactly
// one shape is populated:
//
//   - entity:         Entity
//   - object link:    Property + Entity
//   - data link:      Property + Literal
//   - restriction:    Restriction + Property (+ Entity filler, Cardinality)
//   - characteristic: Characteristic
//
// Descriptor capabilities convert their typed values to and from Object with
// the Encode*/Decode* helpers below.
type Object struct {
	Entity         Entity          `json:"entity,omitzero"`
	Property       Entity          `json:"property,omitzero"`
	Literal        Literal         `json:"literal,omitzero"`
	Restriction    RestrictionType `json:"restriction,omitempty"`
	Cardinality    int             `json:"cardinality,omitempty"`
	Characteristic Characteristic  `json:"characteristic,omitempty"`
}

// IsZero reports whether o carries no value.
func (o Object) IsZero() bool { return o == Object{} }

func (o Object) String() string {
	switch {
	case o.Characteristic != "":
		return string(o.Characteristic)
	case o.Restriction != "":
		return DecodeRestriction(o).String()
	case !o.Property.IsZero() && !o.Literal.IsZero():
		return o.Property.Name + "." + o.Literal.String()
	case !o.Property.IsZero():
		return o.Property.Name + "." + o.Entity.Name
	case !o.Literal.IsZero():
		return o.Literal.String()
	default:
		return o.Entity.String()
	}
}

// EncodeEntity wraps an entity value.
func EncodeEntity(e Entity) Object { return Object{Entity: e} }

// DecodeEntity unwraps an entity value.
func DecodeEntity(o Object) Entity { return o.Entity }

// EncodeObjectLink wraps an object link value.
func EncodeObjectLink(l ObjectLink) Object { return Object{Property: l.Property, Entity: l.Object} }

// DecodeObjectLink unwraps an object link value.
func DecodeObjectLink(o Object) ObjectLink { return ObjectLink{Property: o.Property, Object: o.Entity} }

// EncodeDataLink wraps a data link value.
func EncodeDataLink(l DataLink) Object { return Object{Property: l.Property, Literal: l.Value} }

// DecodeDataLink unwraps a data link value.
func DecodeDataLink(o Object) DataLink { return DataLink{Property: o.Property, Value: o.Literal} }

// EncodeRestriction wraps a restriction value.
func EncodeRestriction(r Restriction) Object {
	o := Object{Restriction: r.Type, Property: r.Property, Entity: r.Filler}
	if r.Type.Counted() {
		o.Cardinality = r.Cardinality
	}
	return o
}

// DecodeRestriction unwraps a restriction value.
func DecodeRestriction(o Object) Restriction {
	return Restriction{Type: o.Restriction, Property: o.Property, Filler: o.Entity, Cardinality: o.Cardinality}
}

// EncodeCharacteristic wraps a property characteristic.
func EncodeCharacteristic(c Characteristic) Object { return Object{Characteristic: c} }

// DecodeCharacteristic unwraps a property characteristic.
func DecodeCharacteristic(o Object) Characteristic { return o.Characteristic }

// Key returns a stable textual identity for o, used by stores as a
// uniqueness key. Fields are length-prefixed, so names and literals may
// contain any character.
func (o Object) Key() string {
	return joinKey(
		string(o.Entity.Kind), o.Entity.Name,
		string(o.Property.Kind), o.Property.Name,
		o.Literal.Datatype, o.Literal.Lexical,
		string(o.Restriction), strconv.Itoa(o.Cardinality),
		string(o.Characteristic),
	)
}

func joinKey(fields ...string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}
