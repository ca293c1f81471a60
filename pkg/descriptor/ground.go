package descriptor

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Ground binds a descriptor to one entity of one ontology.
type Ground struct {
	onto   types.Ontology
	entity types.Entity
}

// GroundKey is the comparable identity of a Ground.
type GroundKey struct {
	Ontology string
	Entity   types.Entity
}

// NewGround resolves name in onto and grounds on the resulting entity.
// Returns ErrUnresolvedEntity if the entity is not declared.
func NewGround(ctx context.Context, onto types.Ontology, kind types.EntityKind, name string) (*Ground, error) {
	if onto == nil {
		return nil, types.ErrUnboundGround
	}
	e, err := onto.Resolve(ctx, kind, name)
	if err != nil {
		return nil, fmt.Errorf("grounding %s %q: %w", kind, name, err)
	}
	return &Ground{onto: onto, entity: e}, nil
}

// GroundOn grounds on an entity handle the caller already holds.
func GroundOn(onto types.Ontology, e types.Entity) *Ground {
	return &Ground{onto: onto, entity: e}
}

// Ontology returns the bound ontology.
func (g *Ground) Ontology() types.Ontology {
	if g == nil {
		return nil
	}
	return g.onto
}

// Entity returns the bound entity.
func (g *Ground) Entity() types.Entity {
	if g == nil {
		return types.Entity{}
	}
	return g.entity
}

// SetInstance re-points the ground to another entity of the same kind in the
// same ontology. On failure the ground is left unchanged.
func (g *Ground) SetInstance(ctx context.Context, name string) error {
	if err := g.check(); err != nil {
		return err
	}
	e, err := g.onto.Resolve(ctx, g.entity.Kind, name)
	if err != nil {
		return fmt.Errorf("re-grounding to %q: %w", name, err)
	}
	g.entity = e
	return nil
}

// Copy returns an independent ground bound to the same entity.
func (g *Ground) Copy() *Ground {
	cp := *g
	return &cp
}

// Key returns the map-key identity of the ground. A nil ground has the zero
// key.
func (g *Ground) Key() GroundKey {
	if g == nil {
		return GroundKey{}
	}
	k := GroundKey{Entity: g.entity}
	if g.onto != nil {
		k.Ontology = g.onto.Name()
	}
	return k
}

// Equal reports whether both grounds name the same entity of the same
// ontology.
func (g *Ground) Equal(other *Ground) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.Key() == other.Key()
}

func (g *Ground) String() string {
	k := g.Key()
	return k.Ontology + "/" + k.Entity.String()
}

func (g *Ground) check() error {
	if g == nil || g.onto == nil || g.entity.IsZero() {
		return types.ErrUnboundGround
	}
	return nil
}
