package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

var (
	robot   = types.Class("Robot")
	machine = types.Class("Machine")
	thing   = types.Class("Thing")
	animal  = types.Class("Animal")
	wheel   = types.Class("Wheel")
	robot1  = types.Individual("Robot1")
	robot2  = types.Individual("Robot2")
	wheel1  = types.Individual("Wheel1")
	wheel2  = types.Individual("Wheel2")
	hasPart = types.ObjectProperty("hasPart")
	partOf  = types.ObjectProperty("partOf")
	age     = types.DataProperty("age")
)

func ent(e types.Entity) types.Object { return types.EncodeEntity(e) }

func olink(p, o types.Entity) types.Object {
	return types.EncodeObjectLink(types.ObjectLink{Property: p, Object: o})
}

func st(subject types.Entity, kind types.AxiomKind, obj types.Object) types.Statement {
	return types.StatementOf(subject, kind, obj)
}

// entitiesOf collects every entity a set of statements mentions.
func entitiesOf(stmts []types.Statement) []types.Entity {
	seen := map[types.Entity]bool{}
	var out []types.Entity
	for _, s := range stmts {
		for _, e := range []types.Entity{s.Subject, s.Object.Entity, s.Object.Property} {
			if !e.IsZero() && !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

func reasonOver(stmts ...types.Statement) *view {
	return reason(entitiesOf(stmts), stmts)
}

func entities(objs []types.Object) []types.Entity {
	out := make([]types.Entity, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Entity)
	}
	return out
}

func rules(v *view) []string {
	var out []string
	for _, viol := range v.violations {
		out = append(out, viol.Rule)
	}
	return out
}

func TestReasonClassHierarchy(t *testing.T) {
	v := reasonOver(
		st(robot, types.KindSuperClass, ent(machine)),
		st(machine, types.KindSuperClass, ent(thing)),
		st(robot1, types.KindType, ent(robot)),
	)

	assert.ElementsMatch(t, []types.Entity{machine, thing}, entities(v.query(robot, types.KindSuperClass)))
	assert.ElementsMatch(t, []types.Entity{robot, machine}, entities(v.query(thing, types.KindSubClass)))
	assert.ElementsMatch(t, []types.Entity{robot, machine, thing}, entities(v.query(robot1, types.KindType)))
	assert.Equal(t, []types.Entity{robot1}, entities(v.query(thing, types.KindInstance)))
	assert.Empty(t, v.violations)
}

func TestReasonEquivalence(t *testing.T) {
	automaton := types.Class("Automaton")
	v := reasonOver(
		st(robot, types.KindEquivalentClass, ent(automaton)),
		st(robot, types.KindSuperClass, ent(machine)),
	)

	assert.Equal(t, []types.Entity{automaton}, entities(v.query(robot, types.KindEquivalentClass)))
	assert.Equal(t, []types.Entity{robot}, entities(v.query(automaton, types.KindEquivalentClass)))
	assert.Equal(t, []types.Entity{machine}, entities(v.query(automaton, types.KindSuperClass)),
		"equivalent classes are not reported as super classes")
}

func TestReasonDisjointInherited(t *testing.T) {
	v := reasonOver(
		st(robot, types.KindSuperClass, ent(machine)),
		st(machine, types.KindDisjointClass, ent(animal)),
	)
	assert.Equal(t, []types.Entity{animal}, entities(v.query(robot, types.KindDisjointClass)))
	assert.ElementsMatch(t, []types.Entity{machine, robot}, entities(v.query(animal, types.KindDisjointClass)))
}

func TestReasonClassification(t *testing.T) {
	def := types.EncodeRestriction(types.Restriction{Type: types.RestrictMin, Property: hasPart, Filler: wheel, Cardinality: 2})
	stmts := []types.Statement{
		st(robot, types.KindDefinition, def),
		st(wheel1, types.KindType, ent(wheel)),
		st(wheel2, types.KindType, ent(wheel)),
		st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
	}

	v := reasonOver(stmts...)
	assert.NotContains(t, entities(v.query(robot1, types.KindType)), robot)

	stmts = append(stmts, st(robot1, types.KindObjectLink, olink(hasPart, wheel2)))
	v = reasonOver(stmts...)
	assert.Contains(t, entities(v.query(robot1, types.KindType)), robot)
	assert.Equal(t, []types.Entity{robot1}, entities(v.query(robot, types.KindInstance)))
}

func TestReasonOnlyTypesFillers(t *testing.T) {
	only := types.EncodeRestriction(types.Restriction{Type: types.RestrictOnly, Property: hasPart, Filler: wheel})
	v := reasonOver(
		st(robot, types.KindDefinition, only),
		st(robot1, types.KindType, ent(robot)),
		st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
	)
	assert.Contains(t, entities(v.query(wheel1, types.KindType)), wheel)
}

func TestReasonLinkPropagation(t *testing.T) {
	component := types.ObjectProperty("hasComponent")
	v := reasonOver(
		st(hasPart, types.KindSuperProperty, ent(component)),
		st(hasPart, types.KindInverseProperty, ent(partOf)),
		st(hasPart, types.KindCharacteristic, types.EncodeCharacteristic(types.Transitive)),
		st(robot1, types.KindObjectLink, olink(hasPart, robot2)),
		st(robot2, types.KindObjectLink, olink(hasPart, wheel1)),
	)

	links := v.query(robot1, types.KindObjectLink)
	assert.Contains(t, links, olink(hasPart, wheel1), "transitive")
	assert.Contains(t, links, olink(component, robot2), "super property")
	assert.Contains(t, v.query(wheel1, types.KindObjectLink), olink(partOf, robot2), "inverse")
	assert.Equal(t, []types.Entity{partOf}, entities(v.query(hasPart, types.KindInverseProperty)))
}

func TestReasonDomainAndRange(t *testing.T) {
	v := reasonOver(
		st(hasPart, types.KindDomain, ent(machine)),
		st(hasPart, types.KindRange, ent(thing)),
		st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
	)
	assert.Contains(t, entities(v.query(robot1, types.KindType)), machine)
	assert.Contains(t, entities(v.query(wheel1, types.KindType)), thing)
}

func TestReasonSameAs(t *testing.T) {
	v := reasonOver(
		st(robot1, types.KindSameIndividual, ent(robot2)),
		st(robot2, types.KindType, ent(robot)),
	)
	assert.Equal(t, []types.Entity{robot2}, entities(v.query(robot1, types.KindSameIndividual)))
	assert.Contains(t, entities(v.query(robot1, types.KindType)), robot)
}

func TestReasonViolations(t *testing.T) {
	functional := types.EncodeCharacteristic(types.Functional)
	tests := []struct {
		name  string
		stmts []types.Statement
		want  []string
	}{
		{
			name: "consistent",
			stmts: []types.Statement{
				st(robot1, types.KindType, ent(robot)),
			},
		},
		{
			name: "disjoint types",
			stmts: []types.Statement{
				st(robot, types.KindDisjointClass, ent(animal)),
				st(robot1, types.KindType, ent(robot)),
				st(robot1, types.KindType, ent(animal)),
			},
			want: []string{ruleDisjointTypes},
		},
		{
			name: "same and different",
			stmts: []types.Statement{
				st(robot1, types.KindSameIndividual, ent(robot2)),
				st(robot1, types.KindDifferentIndividual, ent(robot2)),
			},
			want: []string{ruleSameAndDifferent},
		},
		{
			name: "functional object property",
			stmts: []types.Statement{
				st(hasPart, types.KindCharacteristic, functional),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel2)),
			},
			want: []string{ruleFunctional},
		},
		{
			name: "functional satisfied through sameAs",
			stmts: []types.Statement{
				st(hasPart, types.KindCharacteristic, functional),
				st(wheel1, types.KindSameIndividual, ent(wheel2)),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel2)),
			},
		},
		{
			name: "functional data property",
			stmts: []types.Statement{
				st(age, types.KindCharacteristic, functional),
				st(robot1, types.KindDataLink, types.EncodeDataLink(types.DataLink{Property: age, Value: types.Integer(1)})),
				st(robot1, types.KindDataLink, types.EncodeDataLink(types.DataLink{Property: age, Value: types.Integer(2)})),
			},
			want: []string{ruleFunctional},
		},
		{
			name: "inverse functional",
			stmts: []types.Statement{
				st(hasPart, types.KindCharacteristic, types.EncodeCharacteristic(types.InverseFunctional)),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
				st(robot2, types.KindObjectLink, olink(hasPart, wheel1)),
			},
			want: []string{ruleInverseFunctional},
		},
		{
			name: "irreflexive",
			stmts: []types.Statement{
				st(hasPart, types.KindCharacteristic, types.EncodeCharacteristic(types.Irreflexive)),
				st(robot1, types.KindObjectLink, olink(hasPart, robot1)),
			},
			want: []string{ruleIrreflexive},
		},
		{
			name: "asymmetric",
			stmts: []types.Statement{
				st(hasPart, types.KindCharacteristic, types.EncodeCharacteristic(types.Asymmetric)),
				st(robot1, types.KindObjectLink, olink(hasPart, robot2)),
				st(robot2, types.KindObjectLink, olink(hasPart, robot1)),
			},
			want: []string{ruleAsymmetric},
		},
		{
			name: "disjoint properties",
			stmts: []types.Statement{
				st(hasPart, types.KindDisjointProperty, ent(partOf)),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
				st(robot1, types.KindObjectLink, olink(partOf, wheel1)),
			},
			want: []string{ruleDisjointProperties},
		},
		{
			name: "max cardinality",
			stmts: []types.Statement{
				st(robot, types.KindDefinition, types.EncodeRestriction(types.Restriction{Type: types.RestrictMax, Property: hasPart, Cardinality: 1})),
				st(robot1, types.KindType, ent(robot)),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel1)),
				st(robot1, types.KindObjectLink, olink(hasPart, wheel2)),
			},
			want: []string{ruleMaxCardinality},
		},
		{
			name: "data only datatype",
			stmts: []types.Statement{
				st(robot, types.KindDefinition, types.EncodeRestriction(types.Restriction{Type: types.RestrictOnly, Property: age, Filler: types.Datatype(types.XSDInteger)})),
				st(robot1, types.KindType, ent(robot)),
				st(robot1, types.KindDataLink, types.EncodeDataLink(types.DataLink{Property: age, Value: types.String("old")})),
			},
			want: []string{ruleDatatype},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := reasonOver(tt.stmts...)
			assert.Equal(t, tt.want, rules(v))
		})
	}
}

func TestQueryUnknownSubject(t *testing.T) {
	v := reasonOver(st(robot, types.KindSuperClass, ent(machine)))
	assert.Empty(t, v.query(types.Class("Ghost"), types.KindSuperClass))
	assert.Empty(t, v.query(types.Individual("Ghost"), types.KindType))
}
