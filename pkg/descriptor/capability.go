package descriptor

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Semantic is the synchronization surface shared by every capability,
// whatever its value type. Descriptors fold over a list of them.
type Semantic interface {
	Kind() types.AxiomKind
	ReadSemantic(ctx context.Context) ([]MappingIntent, error)
	WriteSemantic(ctx context.Context) ([]MappingIntent, error)
	WriteSemanticSafe(ctx context.Context, reason bool) ([]MappingIntent, error)

	write(ctx context.Context) ([]MappingIntent, []edit, error)
	reset()
}

// edit is one change applied to the ontology during a write.
type edit struct {
	subject types.Entity
	kind    types.AxiomKind
	obj     types.Object
	added   bool
}

// Capability mirrors the values of one axiom kind for the entity of its
// ground.
type Capability[T comparable] struct {
	ground *Ground
	kind   types.AxiomKind
	set    *EntitySet[T]
	codec  Codec[T]
}

// NewCapability returns a capability for kind over g. Capabilities of one
// descriptor share its ground, so re-pointing the ground re-points them all.
func NewCapability[T comparable](g *Ground, kind types.AxiomKind, codec Codec[T], singleton bool) *Capability[T] {
	return &Capability[T]{
		ground: g,
		kind:   kind,
		set:    NewEntitySet[T](singleton),
		codec:  codec,
	}
}

// Kind returns the axiom kind the capability mirrors.
func (c *Capability[T]) Kind() types.AxiomKind { return c.kind }

// Ground returns the capability's ground.
func (c *Capability[T]) Ground() *Ground { return c.ground }

// Set returns the in-memory set.
func (c *Capability[T]) Set() *EntitySet[T] { return c.set }

// Add stages v for assertion.
func (c *Capability[T]) Add(v T) { c.set.Add(v) }

// Remove stages v for retraction.
func (c *Capability[T]) Remove(v T) { c.set.Remove(v) }

// Members returns the values loaded by the last read or write.
func (c *Capability[T]) Members() []T { return c.set.Members() }

// Query returns the values the ontology currently reports, without touching
// the set.
func (c *Capability[T]) Query(ctx context.Context) ([]T, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	objs, err := c.ground.onto.Query(ctx, c.ground.entity, c.kind)
	if err != nil {
		return nil, fmt.Errorf("querying %s of %s: %w", c.kind, c.ground.entity, err)
	}
	values := make([]T, 0, len(objs))
	for _, o := range objs {
		values = append(values, c.codec.Decode(o))
	}
	return values, nil
}

// ReadSemantic loads the set from the ontology and returns one intent per
// value that appeared or disappeared. Staged changes are dropped. A
// singleton set that receives several values keeps them all and reports a
// singleton_violation intent.
func (c *Capability[T]) ReadSemantic(ctx context.Context) (intents []MappingIntent, err error) {
	ctx, span := startSpan(ctx, "Read", c.ground.Entity(), c.kind)
	defer func() { endSpan(span, len(intents), err) }()

	values, err := c.Query(ctx)
	if err != nil {
		return nil, err
	}
	return c.load(values, PhaseRead), nil
}

func (c *Capability[T]) load(values []T, phase Phase) []MappingIntent {
	subject := c.ground.entity
	added, removed := c.set.replace(values)

	intents := make([]MappingIntent, 0, len(added)+len(removed))
	for _, v := range added {
		intents = append(intents, newIntent(phase, ActionAdded, subject, c.kind, c.codec.Encode(v)))
	}
	for _, v := range removed {
		intents = append(intents, newIntent(phase, ActionRemoved, subject, c.kind, c.codec.Encode(v)))
	}
	if c.set.singleton && c.set.Len() > 1 {
		m := newIntent(phase, ActionSingletonViolation, subject, c.kind, types.Object{})
		m.Detail = fmt.Sprintf("%d values", c.set.Len())
		intents = append(intents, m)
		logger().Warn("singleton holds several values",
			"subject", subject.String(), "kind", c.kind, "count", c.set.Len())
	}
	return intents
}

// WriteSemantic asserts staged additions, then retracts staged removals,
// folding each applied change into the members. Only changes the ontology
// reports as effective are recorded for a later rollback. It stops at the first
// error; ErrInconsistent is returned as the ontology reported it.
func (c *Capability[T]) WriteSemantic(ctx context.Context) ([]MappingIntent, error) {
	intents, _, err := c.write(ctx)
	return intents, err
}

// WriteSemanticSafe writes like WriteSemantic and, when reason is set, asks
// the ontology to reason afterwards. If either step reports ErrInconsistent
// every applied change is reverted in reverse order and the set is read
// back, and WriteSemanticSafe returns normally.
func (c *Capability[T]) WriteSemanticSafe(ctx context.Context, reason bool) ([]MappingIntent, error) {
	return writeSafe(ctx, c.ground, []Semantic{c}, reason)
}

func (c *Capability[T]) write(ctx context.Context) (intents []MappingIntent, applied []edit, err error) {
	ctx, span := startSpan(ctx, "Write", c.ground.Entity(), c.kind)
	defer func() { endSpan(span, len(intents), err) }()

	if err := c.check(); err != nil {
		return nil, nil, err
	}
	subject := c.ground.entity
	for _, v := range c.set.additions {
		if err := c.kind.CheckValue(subject, c.codec.Encode(v)); err != nil {
			return nil, nil, fmt.Errorf("adding %s to %s of %s: %w", c.codec.Encode(v), c.kind, subject, err)
		}
	}

	onto := c.ground.onto
	for _, v := range c.set.PendingAdditions() {
		obj := c.codec.Encode(v)
		changed, err := onto.Assert(ctx, subject, c.kind, obj)
		if err != nil && !errors.Is(err, types.ErrInconsistent) {
			return intents, applied, fmt.Errorf("asserting %s %s %s: %w", subject, c.kind, obj, err)
		}
		c.set.commitAdd(v)
		if changed {
			applied = append(applied, edit{subject: subject, kind: c.kind, obj: obj, added: true})
		}
		intents = append(intents, newIntent(PhaseWrite, ActionAdded, subject, c.kind, obj))
		if err != nil {
			return intents, applied, err
		}
	}
	for _, v := range c.set.PendingRemovals() {
		obj := c.codec.Encode(v)
		changed, err := onto.Retract(ctx, subject, c.kind, obj)
		if err != nil && !errors.Is(err, types.ErrInconsistent) {
			return intents, applied, fmt.Errorf("retracting %s %s %s: %w", subject, c.kind, obj, err)
		}
		c.set.commitRemove(v)
		if changed {
			applied = append(applied, edit{subject: subject, kind: c.kind, obj: obj, added: false})
		}
		intents = append(intents, newIntent(PhaseWrite, ActionRemoved, subject, c.kind, obj))
		if err != nil {
			return intents, applied, err
		}
	}
	return intents, applied, nil
}

func (c *Capability[T]) reset() { c.set.reset() }

func (c *Capability[T]) check() error {
	if err := c.ground.check(); err != nil {
		return err
	}
	if !c.kind.AppliesTo(c.ground.entity.Kind) {
		return fmt.Errorf("%w: %s on %s", types.ErrKindMismatch, c.kind, c.ground.entity)
	}
	return nil
}
