package descriptor

import (
	"context"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// fakeOntology stores statements verbatim and answers queries from them.
// inconsistent decides, after every change and on Reason, whether the
// ontology is inconsistent. inferred adds values to query results.
type fakeOntology struct {
	name         string
	entities     map[types.Entity]bool
	stmts        []types.Statement
	inferred     map[types.Entity]map[types.AxiomKind][]types.Object
	inconsistent func(f *fakeOntology) bool
	buffered     bool
	reasoned     int
	synced       int
	failAssert   error
}

func newFake(name string, entities ...types.Entity) *fakeOntology {
	f := &fakeOntology{
		name:     name,
		entities: make(map[types.Entity]bool),
		inferred: make(map[types.Entity]map[types.AxiomKind][]types.Object),
	}
	for _, e := range entities {
		f.entities[e] = true
	}
	return f
}

func (f *fakeOntology) Name() string { return f.name }

func (f *fakeOntology) has(s types.Statement) bool { return slices.Contains(f.stmts, s) }

func (f *fakeOntology) state(subject types.Entity, kind types.AxiomKind, obj types.Object) {
	f.stmts = append(f.stmts, types.StatementOf(subject, kind, obj))
}

func (f *fakeOntology) infer(subject types.Entity, kind types.AxiomKind, objs ...types.Object) {
	if f.inferred[subject] == nil {
		f.inferred[subject] = make(map[types.AxiomKind][]types.Object)
	}
	f.inferred[subject][kind] = objs
}

func (f *fakeOntology) Query(_ context.Context, subject types.Entity, kind types.AxiomKind) ([]types.Object, error) {
	var out []types.Object
	for _, s := range f.stmts {
		if s.Predicate != kind.Predicate() {
			continue
		}
		switch {
		case kind.Reversed() && s.Object.Entity == subject:
			out = append(out, types.EncodeEntity(s.Subject))
		case !kind.Reversed() && s.Subject == subject:
			out = append(out, s.Object)
		}
	}
	return append(out, f.inferred[subject][kind]...), nil
}

func (f *fakeOntology) Assert(_ context.Context, subject types.Entity, kind types.AxiomKind, obj types.Object) (bool, error) {
	if f.failAssert != nil {
		return false, f.failAssert
	}
	s := types.StatementOf(subject, kind, obj)
	if f.has(s) {
		return false, nil
	}
	f.stmts = append(f.stmts, s)
	if !obj.Entity.IsZero() {
		f.entities[obj.Entity] = true
	}
	return true, f.check()
}

func (f *fakeOntology) Retract(_ context.Context, subject types.Entity, kind types.AxiomKind, obj types.Object) (bool, error) {
	s := types.StatementOf(subject, kind, obj)
	i := slices.Index(f.stmts, s)
	if i < 0 {
		return false, nil
	}
	f.stmts = slices.Delete(f.stmts, i, i+1)
	return true, f.check()
}

func (f *fakeOntology) check() error {
	if f.buffered || f.inconsistent == nil || !f.inconsistent(f) {
		return nil
	}
	return &types.InconsistencyError{Violations: []types.Violation{{Rule: "fake"}}}
}

func (f *fakeOntology) Resolve(_ context.Context, kind types.EntityKind, name string) (types.Entity, error) {
	e := types.Entity{Kind: kind, Name: name}
	if !f.entities[e] {
		return types.Entity{}, fmt.Errorf("%w: %s", types.ErrUnresolvedEntity, e)
	}
	return e, nil
}

func (f *fakeOntology) NameOf(_ context.Context, e types.Entity) (string, error) {
	if !f.entities[e] {
		return "", types.ErrUnresolvedEntity
	}
	return e.Name, nil
}

func (f *fakeOntology) Reason(context.Context) error {
	f.reasoned++
	if f.inconsistent != nil && f.inconsistent(f) {
		return &types.InconsistencyError{}
	}
	return nil
}

func (f *fakeOntology) Synchronize(context.Context) error {
	f.synced++
	return nil
}

func (f *fakeOntology) Save(context.Context, string) error { return nil }

// disjointTypes reports an individual typed with both a and b.
func disjointTypes(a, b types.Entity) func(*fakeOntology) bool {
	return func(f *fakeOntology) bool {
		for _, s := range f.stmts {
			if s.Predicate != types.PredType || s.Object.Entity != a {
				continue
			}
			if f.has(types.Statement{Subject: s.Subject, Predicate: types.PredType, Object: types.EncodeEntity(b)}) {
				return true
			}
		}
		return false
	}
}
