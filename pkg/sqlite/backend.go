// Package sqlite opens SQLite-backed ontology references for use with
// pkg/descriptor, keeping the store and reasoner internal.
package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/owloop/internal/ontology"
	"github.com/mesh-intelligence/owloop/internal/sqlite"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Ontology is an ontology reference that owns its store.
type Ontology interface {
	types.Ontology

	// Declare adds entities to the ontology.
	Declare(ctx context.Context, entities ...types.Entity) error

	// Violations returns the consistency violations of the last reasoning.
	Violations() []types.Violation

	// Close flushes and closes the store.
	Close() error
}

// Open opens the ontology named cfg.Name on a SQLite store. An empty
// cfg.DataDir keeps the ontology in memory.
//
// Example:
//
//	onto, err := sqlite.Open(ctx, types.Config{Name: "robots", DataDir: "robots.d"}, nil)
//	if err != nil {
//	    return err
//	}
//	defer onto.Close()
//	robot, err := descriptor.NewConcept(ctx, onto, "Robot")
func Open(ctx context.Context, cfg types.Config, logger *slog.Logger) (Ontology, error) {
	if cfg.Backend == "" {
		cfg.Backend = types.BackendSQLite
	}
	if cfg.Backend != types.BackendSQLite {
		return nil, fmt.Errorf("%w: %q is not sqlite", types.ErrBackendUnknown, cfg.Backend)
	}
	store, err := sqlite.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	ref, err := ontology.Open(ctx, store, ontology.Options{Name: cfg.Name, Buffered: cfg.Buffered, Logger: logger})
	if err != nil {
		store.Close()
		return nil, err
	}
	return ref, nil
}
