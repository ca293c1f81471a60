// Package owloop opens the ontology references listed in an owloop
// configuration directory and hands them to descriptors.
//
// The configuration is read from config.yaml (created with defaults on first
// run) and may be overridden with OWLOOP_ environment variables. Each
// configured ontology is opened on its SQLite or Badger store. Passing a
// Prometheus registerer enables reference metrics.
//
// Example:
//
//	reg, err := owloop.Open(ctx, owloop.Options{Registerer: prometheus.DefaultRegisterer})
//	if err != nil {
//	    return err
//	}
//	defer reg.Close()
//	onto, err := reg.Get("default")
//	if err != nil {
//	    return err
//	}
//	robot, err := descriptor.NewConcept(ctx, onto, "Robot")
package owloop

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/owloop/internal/config"
	"github.com/mesh-intelligence/owloop/internal/metrics"
	"github.com/mesh-intelligence/owloop/internal/ontology"
	"github.com/mesh-intelligence/owloop/internal/paths"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Ontology is an open ontology reference owned by a Registry.
type Ontology interface {
	types.Ontology

	// Declare adds entities to the ontology.
	Declare(ctx context.Context, entities ...types.Entity) error

	// Violations returns the consistency violations of the last reasoning.
	Violations() []types.Violation

	// Load reads a file written by Save into the ontology.
	Load(ctx context.Context, path string) error
}

// Options configures Open.
type Options struct {
	// ConfigDir holds config.yaml. Empty resolves OWLOOP_CONFIG_DIR, then
	// the platform default.
	ConfigDir string

	// Registerer receives the reference metrics. Nil disables metrics.
	Registerer prometheus.Registerer

	// Logger overrides the logger built from the configured level and
	// format.
	Logger *slog.Logger
}

// Registry holds the ontology references opened from a configuration. It is
// owned by the caller; there is no process-wide instance.
type Registry struct {
	cfg    *config.Config
	logger *slog.Logger
	refs   *ontology.Registry
}

// Open loads the configuration and opens every ontology it lists. On error
// nothing is left open.
func Open(ctx context.Context, opts Options) (*Registry, error) {
	dir, err := paths.ResolveConfigDir(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = cfg.Logger()
	}

	var m *metrics.Metrics
	if opts.Registerer != nil {
		if m, err = metrics.New(opts.Registerer); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}

	refs := ontology.NewRegistry(logger, m)
	if err := refs.OpenAll(ctx, cfg.Ontologies); err != nil {
		refs.Close()
		return nil, err
	}
	logger.Debug("registry ready", "config_dir", dir, "data_dir", cfg.DataDir, "ontologies", refs.Names())
	return &Registry{cfg: cfg, logger: logger, refs: refs}, nil
}

// Get returns the open ontology named name.
// Returns ErrNotFound if no such ontology is open.
func (r *Registry) Get(name string) (Ontology, error) {
	ref, err := r.refs.Get(name)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// Attach opens an ontology that is not in the configuration. A config
// without a backend uses SQLite, and one without a data dir is placed under
// the configured data directory unless it is an in-memory Badger store.
// Attaching an open name with a different config returns ErrDuplicateName.
func (r *Registry) Attach(ctx context.Context, cfg types.Config) (Ontology, error) {
	if cfg.Backend == "" {
		cfg.Backend = types.BackendSQLite
	}
	if cfg.DataDir == "" && cfg.Name != "" && !cfg.Badger.InMemory {
		cfg.DataDir = paths.OntologyDir(r.cfg.DataDir, cfg.Name)
	}
	ref, err := r.refs.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// LoadFixture applies the YAML fixture at path to the named ontology.
func (r *Registry) LoadFixture(ctx context.Context, name, path string) error {
	ref, err := r.refs.Get(name)
	if err != nil {
		return err
	}
	f, err := ontology.LoadFixture(path)
	if err != nil {
		return err
	}
	if err := f.Apply(ctx, ref); err != nil {
		return fmt.Errorf("applying %s to %s: %w", path, name, err)
	}
	r.logger.Info("fixture loaded", "ontology", name, "path", path, "axioms", len(f.Axioms))
	return nil
}

// Names lists the open ontologies in sorted order.
func (r *Registry) Names() []string { return r.refs.Names() }

// DataDir returns the resolved data directory.
func (r *Registry) DataDir() string { return r.cfg.DataDir }

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger { return r.logger }

// Close closes every open ontology.
func (r *Registry) Close() error { return r.refs.Close() }
