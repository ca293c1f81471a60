package descriptor

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Build returns one new descriptor per entity the members of c point at,
// grounded in the same ontology and made by factory. The new descriptors
// are empty until read. Members that no longer resolve are skipped, as are
// repeated targets.
func Build[T comparable, D any](ctx context.Context, c *Capability[T], factory func(*Ground) D) ([]D, error) {
	if c.codec.Target == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrNotBuildable, c.kind)
	}
	if err := c.ground.check(); err != nil {
		return nil, err
	}
	onto := c.ground.onto
	seen := make(map[types.Entity]bool)
	var out []D
	for _, v := range c.set.members {
		target, ok := c.codec.Target(v)
		if !ok || seen[target] {
			continue
		}
		seen[target] = true
		e, err := onto.Resolve(ctx, target.Kind, target.Name)
		if err != nil {
			if errors.Is(err, types.ErrUnresolvedEntity) {
				logger().Info("skipping unresolved member", "kind", c.kind, "member", target.String())
				continue
			}
			return out, fmt.Errorf("resolving %s: %w", target, err)
		}
		out = append(out, factory(GroundOn(onto, e)))
	}
	return out, nil
}
