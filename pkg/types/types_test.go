package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityValidate(t *testing.T) {
	assert.NoError(t, Class("Robot").Validate())
	assert.ErrorIs(t, Entity{Kind: "thing", Name: "x"}.Validate(), ErrInvalidKind)
	assert.ErrorIs(t, Entity{Kind: KindIndividual}.Validate(), ErrInvalidName)
	assert.Equal(t, "class:Robot", Class("Robot").String())
	assert.Equal(t, "<none>", Entity{}.String())
}

func TestAxiomKindAppliesTo(t *testing.T) {
	tests := []struct {
		kind    AxiomKind
		subject EntityKind
		want    bool
	}{
		{KindSubClass, KindClass, true},
		{KindSubClass, KindIndividual, false},
		{KindType, KindIndividual, true},
		{KindType, KindClass, false},
		{KindInverseProperty, KindObjectProperty, true},
		{KindInverseProperty, KindDataProperty, false},
		{KindRange, KindDataProperty, true},
		{KindObjectLink, KindIndividual, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.subject), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.AppliesTo(tt.subject))
		})
	}
}

func TestCheckValue(t *testing.T) {
	hasWheel := ObjectProperty("hasWheel")
	hasAge := DataProperty("hasAge")

	tests := []struct {
		name    string
		subject Entity
		kind    AxiomKind
		obj     Object
		ok      bool
	}{
		{"class super class", Class("Robot"), KindSuperClass, EncodeEntity(Class("Machine")), true},
		{"individual as super class", Class("Robot"), KindSuperClass, EncodeEntity(Individual("r1")), false},
		{"object range is a class", hasWheel, KindRange, EncodeEntity(Class("Wheel")), true},
		{"data range is a datatype", hasAge, KindRange, EncodeEntity(Datatype(XSDInteger)), true},
		{"data range rejects a class", hasAge, KindRange, EncodeEntity(Class("Wheel")), false},
		{"transitive data property", hasAge, KindCharacteristic, EncodeCharacteristic(Transitive), false},
		{"functional data property", hasAge, KindCharacteristic, EncodeCharacteristic(Functional), true},
		{"sub property of same kind", hasWheel, KindSubProperty, EncodeEntity(ObjectProperty("hasPart")), true},
		{"sub property of other kind", hasWheel, KindSubProperty, EncodeEntity(hasAge), false},
		{
			"object link",
			Individual("r1"), KindObjectLink,
			EncodeObjectLink(ObjectLink{Property: hasWheel, Object: Individual("w1")}), true,
		},
		{
			"data link without value",
			Individual("r1"), KindDataLink,
			EncodeDataLink(DataLink{Property: hasAge}), false,
		},
		{
			"restriction with datatype filler",
			Class("Adult"), KindDefinition,
			EncodeRestriction(Restriction{Type: RestrictSome, Property: hasAge, Filler: Datatype(XSDInteger)}), true,
		},
		{
			"restriction with wrong filler",
			Class("Car"), KindDefinition,
			EncodeRestriction(Restriction{Type: RestrictMin, Property: hasWheel, Filler: Datatype(XSDInteger), Cardinality: 4}), false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.kind.CheckValue(tt.subject, tt.obj)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidValue)
			}
		})
	}
}

func TestStatementOfReversesInverseKinds(t *testing.T) {
	robot, machine := Class("Robot"), Class("Machine")

	up := StatementOf(robot, KindSuperClass, EncodeEntity(machine))
	down := StatementOf(machine, KindSubClass, EncodeEntity(robot))
	assert.Equal(t, up, down)
	assert.Equal(t, PredSubClassOf, up.Predicate)
	assert.Equal(t, robot, up.Subject)
}

func TestObjectCodecs(t *testing.T) {
	r := Restriction{Type: RestrictExact, Property: ObjectProperty("hasWheel"), Filler: Class("Wheel"), Cardinality: 4}
	assert.Equal(t, r, DecodeRestriction(EncodeRestriction(r)))
	assert.Equal(t, "hasWheel exact 4 Wheel", r.String())

	some := Restriction{Type: RestrictSome, Property: ObjectProperty("hasWheel"), Cardinality: 9}
	assert.Zero(t, EncodeRestriction(some).Cardinality)

	l := DataLink{Property: DataProperty("hasAge"), Value: Integer(42)}
	assert.Equal(t, l, DecodeDataLink(EncodeDataLink(l)))
	assert.NotEqual(t, EncodeDataLink(l).Key(), EncodeEntity(Class("x")).Key())
}

func TestKeysSeparateFields(t *testing.T) {
	age := DataProperty("hasAge")
	a := EncodeDataLink(DataLink{Property: age, Value: String("a|b")})
	b := EncodeDataLink(DataLink{Property: age, Value: Literal{Lexical: "b", Datatype: "xsd:string|a"}})
	assert.NotEqual(t, a.Key(), b.Key())

	s1 := Statement{Subject: Individual("r|1"), Predicate: PredType, Object: EncodeEntity(Class("A"))}
	s2 := Statement{Subject: Individual("r"), Predicate: PredType, Object: EncodeEntity(Class("1|A"))}
	assert.NotEqual(t, s1.Key(), s2.Key())
	assert.Equal(t, s1.Key(), s1.Key())
}

func TestInconsistencyErrorUnwraps(t *testing.T) {
	err := error(&InconsistencyError{Violations: []Violation{
		{Rule: "disjoint", Subject: Individual("r1"), Related: []Entity{Class("A"), Class("B")}},
	}})
	assert.True(t, errors.Is(err, ErrInconsistent))
	assert.Contains(t, err.Error(), "disjoint individual:r1 class:A class:B")

	var ie *InconsistencyError
	assert.True(t, errors.As(err, &ie))
	assert.Len(t, ie.Violations, 1)
}
