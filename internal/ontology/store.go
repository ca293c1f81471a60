package ontology

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/owloop/internal/badger"
	"github.com/mesh-intelligence/owloop/internal/sqlite"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

// OpenStore opens the axiom store selected by cfg.Backend.
func OpenStore(cfg types.Config, logger *slog.Logger) (types.AxiomStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case types.BackendSQLite:
		return sqlite.Open(cfg, logger)
	case types.BackendBadger:
		return badger.Open(badger.ConfigFrom(cfg, logger))
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
}
