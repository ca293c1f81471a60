package descriptor

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// writeSafe writes every capability in order. When the ontology reports
// ErrInconsistent, from a write or from the optional reasoning step, the
// applied edits of all capabilities are reverted last-first, the ontology is
// synchronized and every capability is read back.
func writeSafe(ctx context.Context, g *Ground, caps []Semantic, reason bool) ([]MappingIntent, error) {
	var (
		intents []MappingIntent
		applied []edit
		cause   error
	)
	if err := g.check(); err != nil {
		return nil, err
	}
	for _, c := range caps {
		ci, ca, err := c.write(ctx)
		intents = append(intents, ci...)
		applied = append(applied, ca...)
		if err != nil {
			if !errors.Is(err, types.ErrInconsistent) {
				return intents, err
			}
			cause = err
			break
		}
	}
	if cause == nil && reason {
		if err := g.Ontology().Reason(ctx); err != nil {
			if !errors.Is(err, types.ErrInconsistent) {
				return intents, fmt.Errorf("reasoning after write: %w", err)
			}
			cause = err
		}
	}
	if cause == nil {
		return intents, nil
	}

	logger().Warn("write made ontology inconsistent, reverting",
		"subject", g.Entity().String(), "edits", len(applied), "error", cause)

	rollback, err := revert(ctx, g.Ontology(), applied)
	intents = append(intents, rollback...)
	if err != nil {
		return intents, err
	}
	if err := g.Ontology().Synchronize(ctx); err != nil {
		return intents, fmt.Errorf("synchronizing after rollback: %w", err)
	}
	for _, c := range caps {
		ri, err := c.ReadSemantic(ctx)
		intents = append(intents, ri...)
		if err != nil {
			return intents, fmt.Errorf("reading back after rollback: %w", err)
		}
	}
	return intents, nil
}

// revert undoes applied edits in reverse order. An ontology that is still
// inconsistent mid-way does not stop the rollback.
func revert(ctx context.Context, onto types.Ontology, applied []edit) ([]MappingIntent, error) {
	intents := make([]MappingIntent, 0, len(applied))
	for i := len(applied) - 1; i >= 0; i-- {
		e := applied[i]
		var err error
		action := ActionRemoved
		if e.added {
			_, err = onto.Retract(ctx, e.subject, e.kind, e.obj)
		} else {
			action = ActionAdded
			_, err = onto.Assert(ctx, e.subject, e.kind, e.obj)
		}
		if err != nil && !errors.Is(err, types.ErrInconsistent) {
			return intents, fmt.Errorf("reverting %s %s %s: %w", e.subject, e.kind, e.obj, err)
		}
		intents = append(intents, newIntent(PhaseRollback, action, e.subject, e.kind, e.obj))
	}
	return intents, nil
}
