package ontology

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

type entitySet map[types.Entity]bool

func (s entitySet) add(e types.Entity) bool {
	if s[e] {
		return false
	}
	s[e] = true
	return true
}

// relation is a directed graph over entities.
type relation map[types.Entity]entitySet

func (r relation) add(a, b types.Entity) bool {
	if r[a] == nil {
		r[a] = entitySet{}
	}
	return r[a].add(b)
}

func (r relation) has(a, b types.Entity) bool { return r[a][b] }

type link struct {
	subject  types.Entity
	property types.Entity
	object   types.Entity
}

type dataLink struct {
	subject  types.Entity
	property types.Entity
	value    types.Literal
}

type pair struct{ a, b types.Entity }

// view is the reasoner's picture of an ontology: the asserted statements
// plus everything the rules below infer from them.
type view struct {
	entities []types.Entity

	// up maps a class or property to itself and all its ancestors.
	up relation

	disjointClass relation
	disjointProp  relation
	disjointPairs []pair
	propPairs     []pair
	inverse       relation
	different     relation
	domain        relation
	rng           relation
	chars         map[types.Entity]map[types.Characteristic]bool
	defs          map[types.Entity][]types.Restriction

	same      map[types.Entity]entitySet
	types     relation
	links     map[link]bool
	dataLinks map[dataLink]bool

	violations []types.Violation
}

// reason computes the view of the given entities and asserted statements.
//
// Inferences: class and property hierarchies closed over sub-of and
// equivalence; symmetric disjointness, sameAs, differentFrom and inverses;
// domain and range inherited from super properties; individual types closed
// upward, shared across sameAs and implied by domain, range and "only"
// restrictions; classification under classes whose definition is made of
// "some" and "min" restrictions; object links propagated to super, inverse,
// symmetric and transitive properties.
//
// Unique names are assumed: distinct individuals differ unless sameAs says
// otherwise.
func reason(entities []types.Entity, stmts []types.Statement) *view {
	v := &view{
		entities:      entities,
		up:            relation{},
		disjointClass: relation{},
		disjointProp:  relation{},
		inverse:       relation{},
		different:     relation{},
		domain:        relation{},
		rng:           relation{},
		chars:         make(map[types.Entity]map[types.Characteristic]bool),
		defs:          make(map[types.Entity][]types.Restriction),
		same:          make(map[types.Entity]entitySet),
		types:         relation{},
		links:         make(map[link]bool),
		dataLinks:     make(map[dataLink]bool),
	}

	edges := relation{}
	sameAs := relation{}
	assertedDomain, assertedRange := relation{}, relation{}
	for _, s := range stmts {
		o := s.Object.Entity
		switch s.Predicate {
		case types.PredSubClassOf, types.PredSubPropertyOf:
			edges.add(s.Subject, o)
		case types.PredEquivalentClass, types.PredEquivalentProperty:
			edges.add(s.Subject, o)
			edges.add(o, s.Subject)
		case types.PredDisjointWith:
			v.disjointClass.add(s.Subject, o)
			v.disjointClass.add(o, s.Subject)
			v.disjointPairs = append(v.disjointPairs, pair{s.Subject, o})
		case types.PredPropertyDisjointWith:
			v.disjointProp.add(s.Subject, o)
			v.disjointProp.add(o, s.Subject)
			v.propPairs = append(v.propPairs, pair{s.Subject, o})
		case types.PredInverseOf:
			v.inverse.add(s.Subject, o)
			v.inverse.add(o, s.Subject)
		case types.PredDomain:
			assertedDomain.add(s.Subject, o)
		case types.PredRange:
			assertedRange.add(s.Subject, o)
		case types.PredCharacteristic:
			if v.chars[s.Subject] == nil {
				v.chars[s.Subject] = make(map[types.Characteristic]bool)
			}
			v.chars[s.Subject][s.Object.Characteristic] = true
		case types.PredDefinition:
			v.defs[s.Subject] = append(v.defs[s.Subject], types.DecodeRestriction(s.Object))
		case types.PredSameAs:
			sameAs.add(s.Subject, o)
			sameAs.add(o, s.Subject)
		case types.PredDifferentFrom:
			v.different.add(s.Subject, o)
			v.different.add(o, s.Subject)
		case types.PredType:
			v.types.add(s.Subject, o)
		case types.PredObjectLink:
			v.links[link{s.Subject, s.Object.Property, o}] = true
		case types.PredDataLink:
			v.dataLinks[dataLink{s.Subject, s.Object.Property, s.Object.Literal}] = true
		}
	}

	for _, e := range entities {
		if e.Kind == types.KindClass || e.Kind.IsProperty() {
			v.up[e] = reach(edges, e)
		}
	}
	for _, p := range entities {
		if !p.Kind.IsProperty() {
			continue
		}
		for anc := range v.up[p] {
			for d := range assertedDomain[anc] {
				v.domain.add(p, d)
			}
			for r := range assertedRange[anc] {
				v.rng.add(p, r)
			}
		}
	}
	for _, e := range entities {
		if e.Kind == types.KindIndividual {
			v.same[e] = reach(sameAs, e)
		}
	}

	v.closeLinks()
	v.closeTypes()
	v.check()
	return v
}

// reach returns from and every entity reachable from it.
func reach(r relation, from types.Entity) entitySet {
	seen := entitySet{from: true}
	stack := []types.Entity{from}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range r[e] {
			if seen.add(next) {
				stack = append(stack, next)
			}
		}
	}
	return seen
}

func (v *view) hasChar(p types.Entity, c types.Characteristic) bool { return v.chars[p][c] }

func (v *view) closeLinks() {
	for dl := range v.dataLinks {
		for q := range v.up[dl.property] {
			v.dataLinks[dataLink{dl.subject, q, dl.value}] = true
		}
	}
	for changed := true; changed; {
		changed = false
		add := func(l link) {
			if !v.links[l] {
				v.links[l] = true
				changed = true
			}
		}
		for l := range v.links {
			for q := range v.up[l.property] {
				add(link{l.subject, q, l.object})
			}
			for q := range v.inverse[l.property] {
				add(link{l.object, q, l.subject})
			}
			if v.hasChar(l.property, types.Symmetric) {
				add(link{l.object, l.property, l.subject})
			}
			if v.hasChar(l.property, types.Transitive) {
				for m := range v.links {
					if m.property == l.property && m.subject == l.object {
						add(link{l.subject, l.property, m.object})
					}
				}
			}
		}
	}
}

func (v *view) closeTypes() {
	for l := range v.links {
		for d := range v.domain[l.property] {
			v.types.add(l.subject, d)
		}
		for r := range v.rng[l.property] {
			if r.Kind == types.KindClass {
				v.types.add(l.object, r)
			}
		}
	}
	for dl := range v.dataLinks {
		for d := range v.domain[dl.property] {
			v.types.add(dl.subject, d)
		}
	}

	for changed := true; changed; {
		changed = false
		for _, i := range v.individuals() {
			for other := range v.same[i] {
				for c := range v.types[other] {
					changed = v.types.add(i, c) || changed
				}
			}
			for c := range v.types[i] {
				for anc := range v.up[c] {
					changed = v.types.add(i, anc) || changed
				}
			}
			for c, rs := range v.defs {
				for _, r := range rs {
					if r.Type != types.RestrictOnly || r.Filler.Kind != types.KindClass || !v.types[i][c] {
						continue
					}
					for _, j := range v.objects(i, r.Property) {
						changed = v.types.add(j, r.Filler) || changed
					}
				}
				if !v.types[i][c] && v.satisfies(i, rs) {
					changed = v.types.add(i, c) || changed
				}
			}
		}
	}
}

// satisfies reports whether individual i meets a definition made only of
// "some" and "min" restrictions.
func (v *view) satisfies(i types.Entity, rs []types.Restriction) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		need := 1
		switch r.Type {
		case types.RestrictSome:
		case types.RestrictMin:
			need = r.Cardinality
		default:
			return false
		}
		if v.count(i, r) < need {
			return false
		}
	}
	return true
}

// count returns the number of distinct fillers i has for r's property.
func (v *view) count(i types.Entity, r types.Restriction) int {
	if r.Property.Kind == types.KindDataProperty {
		n := 0
		for _, lit := range v.literals(i, r.Property) {
			if r.Filler.IsZero() || lit.Datatype == r.Filler.Name {
				n++
			}
		}
		return n
	}
	reps := entitySet{}
	for _, j := range v.objects(i, r.Property) {
		if r.Filler.IsZero() || v.types[j][r.Filler] {
			reps.add(v.rep(j))
		}
	}
	return len(reps)
}

func (v *view) objects(i, p types.Entity) []types.Entity {
	var out []types.Entity
	for l := range v.links {
		if l.subject == i && l.property == p {
			out = append(out, l.object)
		}
	}
	return out
}

func (v *view) literals(i, p types.Entity) []types.Literal {
	var out []types.Literal
	for dl := range v.dataLinks {
		if dl.subject == i && dl.property == p {
			out = append(out, dl.value)
		}
	}
	return out
}

// rep returns the canonical member of i's sameAs group.
func (v *view) rep(i types.Entity) types.Entity {
	best := i
	for o := range v.same[i] {
		if o.Name < best.Name {
			best = o
		}
	}
	return best
}

func (v *view) individuals() []types.Entity {
	var out []types.Entity
	for _, e := range v.entities {
		if e.Kind == types.KindIndividual {
			out = append(out, e)
		}
	}
	return out
}

func (v *view) properties() []types.Entity {
	var out []types.Entity
	for _, e := range v.entities {
		if e.Kind.IsProperty() {
			out = append(out, e)
		}
	}
	return out
}

// Consistency rules.
const (
	ruleDisjointTypes      = "disjoint_types"
	ruleSameAndDifferent   = "same_and_different"
	ruleFunctional         = "functional"
	ruleInverseFunctional  = "inverse_functional"
	ruleAsymmetric         = "asymmetric"
	ruleIrreflexive        = "irreflexive"
	ruleDisjointProperties = "disjoint_properties"
	ruleMaxCardinality     = "max_cardinality"
	ruleDatatype           = "datatype"
)

func (v *view) violate(rule string, subject types.Entity, detail string, related ...types.Entity) {
	v.violations = append(v.violations, types.Violation{Rule: rule, Subject: subject, Related: related, Detail: detail})
}

func (v *view) check() {
	for _, i := range v.individuals() {
		for _, p := range v.disjointPairs {
			if v.types[i][p.a] && v.types[i][p.b] {
				v.violate(ruleDisjointTypes, i, "", p.a, p.b)
			}
		}
		for other := range v.same[i] {
			if v.different.has(i, other) && i.Name < other.Name {
				v.violate(ruleSameAndDifferent, i, "", other)
			}
		}
		for _, p := range v.properties() {
			v.checkProperty(i, p)
		}
		v.checkDefinitions(i)
	}
	sort.SliceStable(v.violations, func(a, b int) bool {
		return v.violations[a].Rule < v.violations[b].Rule
	})
}

func (v *view) checkProperty(i, p types.Entity) {
	if p.Kind == types.KindDataProperty {
		if v.hasChar(p, types.Functional) {
			if lits := distinctLiterals(v.literals(i, p)); lits > 1 {
				v.violate(ruleFunctional, i, fmt.Sprintf("%d values", lits), p)
			}
		}
		return
	}
	objs := v.objects(i, p)
	if v.hasChar(p, types.Functional) {
		reps := entitySet{}
		for _, j := range objs {
			reps.add(v.rep(j))
		}
		if len(reps) > 1 {
			v.violate(ruleFunctional, i, fmt.Sprintf("%d values", len(reps)), p)
		}
	}
	if v.hasChar(p, types.InverseFunctional) {
		reps := entitySet{}
		for l := range v.links {
			if l.property == p && l.object == i {
				reps.add(v.rep(l.subject))
			}
		}
		if len(reps) > 1 {
			v.violate(ruleInverseFunctional, i, fmt.Sprintf("%d subjects", len(reps)), p)
		}
	}
	for _, j := range objs {
		if v.hasChar(p, types.Irreflexive) && v.rep(j) == v.rep(i) {
			v.violate(ruleIrreflexive, i, "", p)
		}
		if v.hasChar(p, types.Asymmetric) && v.links[link{j, p, i}] && i.Name <= j.Name {
			v.violate(ruleAsymmetric, i, "", p, j)
		}
	}
	for _, pp := range v.propPairs {
		if pp.a != p {
			continue
		}
		for _, j := range objs {
			if v.links[link{i, pp.b, j}] {
				v.violate(ruleDisjointProperties, i, "", pp.a, pp.b, j)
			}
		}
	}
}

func (v *view) checkDefinitions(i types.Entity) {
	for c, rs := range v.defs {
		if !v.types[i][c] {
			continue
		}
		for _, r := range rs {
			switch r.Type {
			case types.RestrictMax, types.RestrictExact:
				if n := v.count(i, r); n > r.Cardinality {
					v.violate(ruleMaxCardinality, i, fmt.Sprintf("%s has %d", r, n), c)
				}
			case types.RestrictOnly:
				if r.Property.Kind != types.KindDataProperty || r.Filler.IsZero() {
					continue
				}
				for _, lit := range v.literals(i, r.Property) {
					if lit.Datatype != r.Filler.Name {
						v.violate(ruleDatatype, i, fmt.Sprintf("%s got %s", r, lit), c)
					}
				}
			}
		}
	}
}

func distinctLiterals(lits []types.Literal) int {
	seen := make(map[types.Literal]bool)
	for _, l := range lits {
		seen[l] = true
	}
	return len(seen)
}

// query answers a descriptor query from the view.
func (v *view) query(subject types.Entity, kind types.AxiomKind) []types.Object {
	var out []types.Object
	addEntities := func(es entitySet) {
		for e := range es {
			out = append(out, types.EncodeEntity(e))
		}
	}
	switch kind {
	case types.KindSuperClass, types.KindSuperProperty:
		addEntities(v.strictAncestors(subject))
	case types.KindSubClass, types.KindSubProperty:
		addEntities(v.strictDescendants(subject))
	case types.KindEquivalentClass, types.KindEquivalentProperty:
		addEntities(v.equivalents(subject))
	case types.KindDisjointClass:
		addEntities(v.disjointWith(subject, v.disjointClass))
	case types.KindDisjointProperty:
		addEntities(v.disjointWith(subject, v.disjointProp))
	case types.KindInstance:
		for _, i := range v.individuals() {
			if v.types[i][subject] {
				out = append(out, types.EncodeEntity(i))
			}
		}
	case types.KindDefinition:
		for _, r := range v.defs[subject] {
			out = append(out, types.EncodeRestriction(r))
		}
	case types.KindType:
		addEntities(v.types[subject])
	case types.KindSameIndividual:
		for e := range v.same[subject] {
			if e != subject {
				out = append(out, types.EncodeEntity(e))
			}
		}
	case types.KindDifferentIndividual:
		for a := range v.same[subject] {
			for b := range v.different[a] {
				for c := range v.same[b] {
					out = append(out, types.EncodeEntity(c))
				}
			}
		}
	case types.KindObjectLink:
		for l := range v.links {
			if l.subject == subject {
				out = append(out, types.EncodeObjectLink(types.ObjectLink{Property: l.property, Object: l.object}))
			}
		}
	case types.KindDataLink:
		for dl := range v.dataLinks {
			if dl.subject == subject {
				out = append(out, types.EncodeDataLink(types.DataLink{Property: dl.property, Value: dl.value}))
			}
		}
	case types.KindInverseProperty:
		addEntities(v.inverse[subject])
	case types.KindDomain:
		addEntities(v.domain[subject])
	case types.KindRange:
		addEntities(v.rng[subject])
	case types.KindCharacteristic:
		for c := range v.chars[subject] {
			out = append(out, types.EncodeCharacteristic(c))
		}
	}
	return sortObjects(out)
}

func (v *view) strictAncestors(e types.Entity) entitySet {
	out := entitySet{}
	for a := range v.up[e] {
		if a != e && !v.up[a][e] {
			out.add(a)
		}
	}
	return out
}

func (v *view) strictDescendants(e types.Entity) entitySet {
	out := entitySet{}
	for d, anc := range v.up {
		if d != e && anc[e] && !v.up[e][d] {
			out.add(d)
		}
	}
	return out
}

func (v *view) equivalents(e types.Entity) entitySet {
	out := entitySet{}
	for a := range v.up[e] {
		if a != e && v.up[a][e] {
			out.add(a)
		}
	}
	return out
}

// disjointWith returns every entity that has an ancestor disjoint with an
// ancestor of e.
func (v *view) disjointWith(e types.Entity, disjoint relation) entitySet {
	targets := entitySet{}
	for a := range v.up[e] {
		for d := range disjoint[a] {
			targets.add(d)
		}
	}
	out := entitySet{}
	for x, anc := range v.up {
		if x.Kind != e.Kind {
			continue
		}
		for t := range targets {
			if anc[t] {
				out.add(x)
				break
			}
		}
	}
	return out
}

func sortObjects(objs []types.Object) []types.Object {
	seen := make(map[types.Object]bool, len(objs))
	out := objs[:0]
	for _, o := range objs {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key() < out[b].Key() })
	return out
}
