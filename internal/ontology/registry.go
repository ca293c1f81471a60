package ontology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mesh-intelligence/owloop/internal/metrics"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Registry hands out one Reference per name. Opening a name twice with the
// same config returns the open reference; a different config is an error.
type Registry struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu   sync.Mutex
	refs map[string]*entry
}

type entry struct {
	cfg types.Config
	ref *Reference
}

// NewRegistry creates an empty registry. Both arguments may be nil.
func NewRegistry(logger *slog.Logger, m *metrics.Metrics) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger, metrics: m, refs: make(map[string]*entry)}
}

// Open returns the reference named cfg.Name, opening its store on first use.
func (g *Registry) Open(ctx context.Context, cfg types.Config) (*Reference, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: reference name", types.ErrInvalidName)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if e, ok := g.refs[cfg.Name]; ok {
		if e.cfg != cfg {
			return nil, fmt.Errorf("%w: %s", types.ErrDuplicateName, cfg.Name)
		}
		return e.ref, nil
	}

	store, err := OpenStore(cfg, g.logger)
	if err != nil {
		return nil, fmt.Errorf("opening store for %s: %w", cfg.Name, err)
	}
	ref, err := Open(ctx, store, Options{
		Name:     cfg.Name,
		Buffered: cfg.Buffered,
		Logger:   g.logger,
		Metrics:  g.metrics,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	g.refs[cfg.Name] = &entry{cfg: cfg, ref: ref}
	g.logger.Info("ontology opened", "ontology", cfg.Name, "backend", cfg.Backend, "buffered", cfg.Buffered)
	return ref, nil
}

// OpenAll opens every configured reference, stopping at the first failure.
func (g *Registry) OpenAll(ctx context.Context, cfgs []types.Config) error {
	for _, cfg := range cfgs {
		if _, err := g.Open(ctx, cfg); err != nil {
			return err
		}
	}
	return nil
}

// Get returns an open reference by name.
func (g *Registry) Get(name string) (*Reference, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.refs[name]
	if !ok {
		return nil, fmt.Errorf("%w: ontology %s", types.ErrNotFound, name)
	}
	return e.ref, nil
}

// Names lists the open references in sorted order.
func (g *Registry) Names() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	names := make([]string, 0, len(g.refs))
	for n := range g.refs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Close closes every open reference and empties the registry.
func (g *Registry) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var errs []error
	for name, e := range g.refs {
		if err := e.ref.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", name, err))
		}
		delete(g.refs, name)
	}
	return errors.Join(errs...)
}
