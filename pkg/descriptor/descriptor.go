package descriptor

import (
	"context"
	"reflect"
	"slices"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Descriptor composes capabilities over one ground. Reads and writes fold
// over the capabilities in order, definitions first, and concatenate their
// intents. Two descriptors are equal when their grounds are.
type Descriptor struct {
	ground *Ground
	caps   []Semantic
}

// NewDescriptor returns a descriptor over g. The capabilities must have been
// built on g.
func NewDescriptor(g *Ground, caps ...Semantic) *Descriptor {
	ordered := slices.Clone(caps)
	slices.SortStableFunc(ordered, func(a, b Semantic) int {
		return definitionRank(a) - definitionRank(b)
	})
	return &Descriptor{ground: g, caps: ordered}
}

func definitionRank(s Semantic) int {
	if s.Kind() == types.KindDefinition {
		return 0
	}
	return 1
}

// Ground returns the descriptor's ground.
func (d *Descriptor) Ground() *Ground { return d.ground }

// Entity returns the grounded entity.
func (d *Descriptor) Entity() types.Entity { return d.ground.Entity() }

// Key returns the comparable identity of the descriptor.
func (d *Descriptor) Key() GroundKey {
	if d == nil {
		return GroundKey{}
	}
	return d.ground.Key()
}

// Equal reports whether both descriptors are grounded on the same entity.
// Nil descriptors, typed or not, equal nothing.
func (d *Descriptor) Equal(other interface{ Key() GroundKey }) bool {
	k, ok := keyOf(other)
	if !ok || d == nil || d.ground == nil {
		return false
	}
	return d.Key() == k
}

func keyOf(k interface{ Key() GroundKey }) (GroundKey, bool) {
	if k == nil {
		return GroundKey{}, false
	}
	if v := reflect.ValueOf(k); v.Kind() == reflect.Pointer && v.IsNil() {
		return GroundKey{}, false
	}
	key := k.Key()
	return key, !key.Entity.IsZero()
}

// Capabilities returns the capabilities in synchronization order.
func (d *Descriptor) Capabilities() []Semantic { return slices.Clone(d.caps) }

// SetInstance re-points the descriptor to another entity of the same kind
// and empties every capability. Call ReadSemantic to load the new entity.
func (d *Descriptor) SetInstance(ctx context.Context, name string) error {
	if err := d.ground.SetInstance(ctx, name); err != nil {
		return err
	}
	for _, c := range d.caps {
		c.reset()
	}
	return nil
}

// ReadSemantic reads every capability.
func (d *Descriptor) ReadSemantic(ctx context.Context) ([]MappingIntent, error) {
	var intents []MappingIntent
	for _, c := range d.caps {
		ci, err := c.ReadSemantic(ctx)
		intents = append(intents, ci...)
		if err != nil {
			return intents, err
		}
	}
	return intents, nil
}

// WriteSemantic writes every capability, stopping at the first error.
func (d *Descriptor) WriteSemantic(ctx context.Context) ([]MappingIntent, error) {
	var intents []MappingIntent
	for _, c := range d.caps {
		ci, err := c.WriteSemantic(ctx)
		intents = append(intents, ci...)
		if err != nil {
			return intents, err
		}
	}
	return intents, nil
}

// WriteSemanticSafe writes every capability and reverts all of them together
// if the ontology becomes inconsistent.
func (d *Descriptor) WriteSemanticSafe(ctx context.Context, reason bool) ([]MappingIntent, error) {
	return writeSafe(ctx, d.ground, d.caps, reason)
}
