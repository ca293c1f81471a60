package descriptor

import "github.com/mesh-intelligence/owloop/pkg/types"

// Codec converts capability values to and from the flat types.Object the
// ontology exchanges. Target, when set, names the entity a value points at;
// Build needs it.
type Codec[T comparable] struct {
	Encode func(T) types.Object
	Decode func(types.Object) T
	Target func(T) (types.Entity, bool)
}

// EntityCodec carries plain entity values.
var EntityCodec = Codec[types.Entity]{
	Encode: types.EncodeEntity,
	Decode: types.DecodeEntity,
	Target: func(e types.Entity) (types.Entity, bool) { return e, !e.IsZero() },
}

// ObjectLinkCodec carries object property assertions. Build follows the
// linked individual.
var ObjectLinkCodec = Codec[types.ObjectLink]{
	Encode: types.EncodeObjectLink,
	Decode: types.DecodeObjectLink,
	Target: func(l types.ObjectLink) (types.Entity, bool) { return l.Object, !l.Object.IsZero() },
}

// DataLinkCodec carries data property assertions.
var DataLinkCodec = Codec[types.DataLink]{
	Encode: types.EncodeDataLink,
	Decode: types.DecodeDataLink,
}

// RestrictionCodec carries class definition conjuncts. Build follows class
// fillers.
var RestrictionCodec = Codec[types.Restriction]{
	Encode: types.EncodeRestriction,
	Decode: types.DecodeRestriction,
	Target: func(r types.Restriction) (types.Entity, bool) {
		return r.Filler, r.Filler.Kind == types.KindClass
	},
}

// CharacteristicCodec carries property characteristics.
var CharacteristicCodec = Codec[types.Characteristic]{
	Encode: types.EncodeCharacteristic,
	Decode: types.DecodeCharacteristic,
}
