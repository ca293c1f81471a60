package descriptor

import "github.com/mesh-intelligence/owloop/pkg/types"

// Class capabilities.

// SubClasses mirrors the direct and inferred sub classes of a class.
func SubClasses(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindSubClass, EntityCodec, false)
}

// SuperClasses mirrors the super classes of a class.
func SuperClasses(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindSuperClass, EntityCodec, false)
}

// EquivalentClasses mirrors the classes equivalent to a class.
func EquivalentClasses(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindEquivalentClass, EntityCodec, false)
}

// DisjointClasses mirrors the classes disjoint with a class.
func DisjointClasses(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindDisjointClass, EntityCodec, false)
}

// Instances mirrors the individuals classified under a class.
func Instances(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindInstance, EntityCodec, false)
}

// Definition mirrors the restrictions whose conjunction defines a class.
func Definition(g *Ground) *Capability[types.Restriction] {
	return NewCapability(g, types.KindDefinition, RestrictionCodec, false)
}

// Individual capabilities.

// Types mirrors the classes of an individual.
func Types(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindType, EntityCodec, false)
}

// SameIndividuals mirrors the individuals declared the same as one.
func SameIndividuals(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindSameIndividual, EntityCodec, false)
}

// DifferentIndividuals mirrors the individuals declared different from one.
func DifferentIndividuals(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindDifferentIndividual, EntityCodec, false)
}

// ObjectLinks mirrors the object property assertions of an individual.
func ObjectLinks(g *Ground) *Capability[types.ObjectLink] {
	return NewCapability(g, types.KindObjectLink, ObjectLinkCodec, false)
}

// DataLinks mirrors the data property assertions of an individual.
func DataLinks(g *Ground) *Capability[types.DataLink] {
	return NewCapability(g, types.KindDataLink, DataLinkCodec, false)
}

// Property capabilities. They serve object and data properties alike.

// SubProperties mirrors the sub properties of a property.
func SubProperties(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindSubProperty, EntityCodec, false)
}

// SuperProperties mirrors the super properties of a property.
func SuperProperties(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindSuperProperty, EntityCodec, false)
}

// EquivalentProperties mirrors the properties equivalent to a property.
func EquivalentProperties(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindEquivalentProperty, EntityCodec, false)
}

// DisjointProperties mirrors the properties disjoint with a property.
func DisjointProperties(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindDisjointProperty, EntityCodec, false)
}

// Inverse mirrors the inverse of an object property. It holds one value.
func Inverse(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindInverseProperty, EntityCodec, true)
}

// Domain mirrors the domain classes of a property.
func Domain(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindDomain, EntityCodec, false)
}

// Range mirrors the range of a property: classes for object properties,
// datatypes for data properties.
func Range(g *Ground) *Capability[types.Entity] {
	return NewCapability(g, types.KindRange, EntityCodec, false)
}

// Characteristics mirrors the characteristics of a property.
func Characteristics(g *Ground) *Capability[types.Characteristic] {
	return NewCapability(g, types.KindCharacteristic, CharacteristicCodec, false)
}
