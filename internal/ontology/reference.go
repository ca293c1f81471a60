// Package ontology provides Reference, an in-process types.Ontology backed
// by a types.AxiomStore and a small rule reasoner, plus a Registry of named
// references and a YAML fixture loader.
package ontology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mesh-intelligence/owloop/internal/jsonl"
	"github.com/mesh-intelligence/owloop/internal/metrics"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

var tracer = otel.Tracer("owloop.ontology")

// builtinDatatypes are declared in every reference.
var builtinDatatypes = []types.Entity{
	types.Datatype(types.XSDString),
	types.Datatype(types.XSDInteger),
	types.Datatype(types.XSDDecimal),
	types.Datatype(types.XSDBoolean),
}

// Options configure a Reference.
type Options struct {
	// Name identifies the reference. Required.
	Name string

	// Buffered defers reasoning until Reason or Synchronize. Otherwise every
	// Assert and Retract re-reasons and reports inconsistency at once.
	Buffered bool

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Reference is a types.Ontology over an axiom store. The asserted axioms are
// mirrored in memory; queries are answered from the last computed view.
// Reference is safe for concurrent use.
type Reference struct {
	name     string
	store    types.AxiomStore
	buffered bool
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu       sync.RWMutex
	entities []types.Entity
	declared map[types.Entity]bool
	asserted []types.Statement
	index    map[types.Statement]bool
	view     *view
	stale    bool
}

// Open loads the entities and axioms held by store and reasons once.
func Open(ctx context.Context, store types.AxiomStore, opts Options) (*Reference, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: reference name", types.ErrInvalidName)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Reference{
		name:     opts.Name,
		store:    store,
		buffered: opts.Buffered,
		logger:   logger.With("component", "ontology", "ontology", opts.Name),
		metrics:  opts.Metrics,
		declared: make(map[types.Entity]bool),
		index:    make(map[types.Statement]bool),
	}

	for _, e := range builtinDatatypes {
		r.remember(e)
	}
	entities, err := store.Entities(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading entities: %w", err)
	}
	for _, e := range entities {
		r.remember(e)
	}
	axioms, err := store.Axioms(ctx, types.AxiomFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading axioms: %w", err)
	}
	for _, a := range axioms {
		r.addStatement(a.Statement())
	}

	v := r.recompute(ctx)
	if len(v.violations) > 0 {
		r.logger.Warn("loaded ontology is inconsistent", "violations", len(v.violations))
	}
	r.logger.Debug("opened", "entities", len(r.entities), "axioms", len(r.asserted), "buffered", r.buffered)
	return r, nil
}

// Name implements types.Ontology.
func (r *Reference) Name() string { return r.name }

// Buffered reports whether reasoning is deferred.
func (r *Reference) Buffered() bool { return r.buffered }

// Store returns the backing store.
func (r *Reference) Store() types.AxiomStore { return r.store }

func (r *Reference) remember(e types.Entity) {
	if !r.declared[e] {
		r.declared[e] = true
		r.entities = append(r.entities, e)
	}
}

func (r *Reference) addStatement(s types.Statement) {
	for _, e := range []types.Entity{s.Subject, s.Object.Entity, s.Object.Property} {
		if !e.IsZero() {
			r.remember(e)
		}
	}
	if !r.index[s] {
		r.index[s] = true
		r.asserted = append(r.asserted, s)
	}
}

// Declare adds entities to the ontology.
func (r *Reference) Declare(ctx context.Context, entities ...types.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entities {
		if err := r.declareLocked(ctx, e); err != nil {
			return err
		}
	}
	r.stale = true
	if !r.buffered {
		r.recompute(ctx)
	}
	return nil
}

func (r *Reference) declareLocked(ctx context.Context, e types.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if r.declared[e] {
		return nil
	}
	if err := r.store.Declare(ctx, e); err != nil {
		return fmt.Errorf("declaring %s: %w", e, err)
	}
	r.remember(e)
	return nil
}

// Entities returns the declared entities of kind, or all of them when kind
// is empty.
func (r *Reference) Entities(kind types.EntityKind) []types.Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []types.Entity
	for _, e := range r.entities {
		if kind == "" || e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Query implements types.Ontology.
func (r *Reference) Query(_ context.Context, subject types.Entity, kind types.AxiomKind) ([]types.Object, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.metrics.Query(r.name, string(kind))
	return r.view.query(subject, kind), nil
}

// Assert implements types.Ontology. Entities the axiom mentions are declared
// on the way.
func (r *Reference) Assert(ctx context.Context, subject types.Entity, kind types.AxiomKind, obj types.Object) (bool, error) {
	return r.change(ctx, "assert", subject, kind, obj)
}

// Retract implements types.Ontology. Retracting an axiom that is not
// asserted is a no-op.
func (r *Reference) Retract(ctx context.Context, subject types.Entity, kind types.AxiomKind, obj types.Object) (bool, error) {
	return r.change(ctx, "retract", subject, kind, obj)
}

func (r *Reference) change(ctx context.Context, op string, subject types.Entity, kind types.AxiomKind, obj types.Object) (changed bool, err error) {
	ctx, span := tracer.Start(ctx, "Reference."+op, trace.WithAttributes(
		attribute.String("owloop.ontology", r.name),
		attribute.String("owloop.subject", subject.String()),
		attribute.String("owloop.kind", string(kind)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := subject.Validate(); err != nil {
		return false, err
	}
	if !kind.AppliesTo(subject.Kind) {
		return false, fmt.Errorf("%w: %s on %s", types.ErrKindMismatch, kind, subject)
	}
	if err := kind.CheckValue(subject, obj); err != nil {
		return false, fmt.Errorf("%s %s %s: %w", subject, kind, obj, err)
	}
	st := types.StatementOf(subject, kind, obj)

	r.mu.Lock()
	defer r.mu.Unlock()

	if op == "assert" {
		if r.index[st] {
			return false, nil
		}
		for _, e := range []types.Entity{st.Subject, st.Object.Entity, st.Object.Property} {
			if e.IsZero() {
				continue
			}
			if err := r.declareLocked(ctx, e); err != nil {
				return false, err
			}
		}
		if _, err := r.store.Insert(ctx, types.NewAxiom(st.Subject, st.Predicate, st.Object)); err != nil {
			return false, fmt.Errorf("storing axiom: %w", err)
		}
		r.addStatement(st)
	} else {
		if !r.index[st] {
			return false, nil
		}
		if _, err := r.store.Delete(ctx, st); err != nil {
			return false, fmt.Errorf("deleting axiom: %w", err)
		}
		delete(r.index, st)
		r.asserted = slices.DeleteFunc(r.asserted, func(s types.Statement) bool { return s == st })
	}
	r.metrics.Change(r.name, op)
	r.metrics.Axioms(r.name, len(r.asserted))
	r.stale = true

	if r.buffered {
		return true, nil
	}
	return true, r.inconsistency(r.recompute(ctx))
}

// Resolve implements types.Ontology.
func (r *Reference) Resolve(_ context.Context, kind types.EntityKind, name string) (types.Entity, error) {
	e := types.Entity{Kind: kind, Name: name}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.declared[e] {
		return types.Entity{}, fmt.Errorf("%w: %s in %s", types.ErrUnresolvedEntity, e, r.name)
	}
	return e, nil
}

// NameOf implements types.Ontology.
func (r *Reference) NameOf(_ context.Context, e types.Entity) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.declared[e] {
		return "", fmt.Errorf("%w: %s in %s", types.ErrUnresolvedEntity, e, r.name)
	}
	return e.Name, nil
}

// Reason implements types.Ontology.
func (r *Reference) Reason(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inconsistency(r.recompute(ctx))
}

// Synchronize flushes the store and refreshes the view. An inconsistent
// result is logged, not returned.
func (r *Reference) Synchronize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Flush(ctx); err != nil {
		return fmt.Errorf("flushing store: %w", err)
	}
	v := r.recompute(ctx)
	if len(v.violations) > 0 {
		r.logger.Warn("ontology is inconsistent after synchronize", "violations", len(v.violations))
	}
	return nil
}

// Violations returns the consistency violations of the current view.
func (r *Reference) Violations() []types.Violation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.view.violations)
}

// recompute rebuilds the view. The caller must hold r.mu for writing.
func (r *Reference) recompute(ctx context.Context) *view {
	_, span := tracer.Start(ctx, "Reference.reason", trace.WithAttributes(
		attribute.String("owloop.ontology", r.name),
		attribute.Int("owloop.axioms", len(r.asserted)),
	))
	defer span.End()

	start := time.Now()
	r.view = reason(slices.Clone(r.entities), r.asserted)
	r.stale = false
	consistent := len(r.view.violations) == 0
	r.metrics.Reasoned(r.name, time.Since(start), consistent)
	span.SetAttributes(attribute.Bool("owloop.consistent", consistent))
	return r.view
}

func (r *Reference) inconsistency(v *view) error {
	if len(v.violations) == 0 {
		return nil
	}
	r.logger.Debug("inconsistent", "violations", len(v.violations), "first", v.violations[0].String())
	return &types.InconsistencyError{Violations: slices.Clone(v.violations)}
}

// exportRecord is one line of a saved ontology.
type exportRecord struct {
	Entity *types.Entity `json:"entity,omitempty"`
	Axiom  *types.Axiom  `json:"axiom,omitempty"`
}

// Save writes the declared entities and the stored axioms to path as JSON
// Lines, one entity or axiom per line. Built-in datatypes are not written.
func (r *Reference) Save(ctx context.Context, path string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	axioms, err := r.store.Axioms(ctx, types.AxiomFilter{})
	if err != nil {
		return fmt.Errorf("reading axioms: %w", err)
	}
	records := make([]exportRecord, 0, len(r.entities)+len(axioms))
	for _, e := range r.entities {
		if slices.Contains(builtinDatatypes, e) {
			continue
		}
		records = append(records, exportRecord{Entity: &e})
	}
	for _, a := range axioms {
		records = append(records, exportRecord{Axiom: &a})
	}
	if err := jsonl.Encode(filepath.Clean(path), records); err != nil {
		return fmt.Errorf("saving %s: %w", r.name, err)
	}
	r.logger.Info("saved", "path", path, "entities", len(records)-len(axioms), "axioms", len(axioms))
	return nil
}

// Load reads a file written by Save into the reference. Axioms already
// present are skipped.
func (r *Reference) Load(ctx context.Context, path string) error {
	records, err := jsonl.Decode[exportRecord](path)
	if err != nil {
		return err
	}
	for _, rec := range records {
		switch {
		case rec.Entity != nil:
			if err := r.Declare(ctx, *rec.Entity); err != nil {
				return err
			}
		case rec.Axiom != nil:
			if err := r.restore(ctx, *rec.Axiom); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reference) restore(ctx context.Context, a types.Axiom) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := a.Statement()
	if r.index[st] {
		return nil
	}
	for _, e := range []types.Entity{st.Subject, st.Object.Entity, st.Object.Property} {
		if e.IsZero() {
			continue
		}
		if err := r.declareLocked(ctx, e); err != nil {
			return err
		}
	}
	if _, err := r.store.Insert(ctx, a); err != nil {
		return fmt.Errorf("storing axiom: %w", err)
	}
	r.addStatement(st)
	r.stale = true
	if !r.buffered {
		r.recompute(ctx)
	}
	return nil
}

// Close closes the backing store.
func (r *Reference) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Close(); err != nil && !errors.Is(err, types.ErrStoreDetached) {
		return err
	}
	return nil
}

var _ types.Ontology = (*Reference)(nil)

// Pending reports whether changes were made since the view was last
// computed. Only a buffered reference is ever pending between calls.
func (r *Reference) Pending() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stale
}
