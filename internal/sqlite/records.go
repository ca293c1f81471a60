package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// entityRecord is one line of entities.jsonl.
type entityRecord struct {
	EntityID  string           `json:"entity_id"`
	Kind      types.EntityKind `json:"kind"`
	Name      string           `json:"name"`
	CreatedAt string           `json:"created_at"`
}

// axiomRecord is one line of axioms.jsonl. Object is kept as raw JSON so
// fields added later survive a round trip through older code.
type axiomRecord struct {
	AxiomID     string           `json:"axiom_id"`
	SubjectKind types.EntityKind `json:"subject_kind"`
	SubjectName string           `json:"subject_name"`
	Predicate   types.Predicate  `json:"predicate"`
	Object      json.RawMessage  `json:"object"`
	CreatedAt   string           `json:"created_at"`
}

func dehydrateAxiom(a types.Axiom) (axiomRecord, error) {
	obj, err := json.Marshal(a.Object)
	if err != nil {
		return axiomRecord{}, fmt.Errorf("encoding axiom object: %w", err)
	}
	return axiomRecord{
		AxiomID:     a.ID,
		SubjectKind: a.Subject.Kind,
		SubjectName: a.Subject.Name,
		Predicate:   a.Predicate,
		Object:      obj,
		CreatedAt:   a.CreatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func hydrateAxiom(r axiomRecord) (types.Axiom, error) {
	var obj types.Object
	if err := json.Unmarshal(r.Object, &obj); err != nil {
		return types.Axiom{}, fmt.Errorf("decoding axiom %s object: %w", r.AxiomID, err)
	}
	created, _ := time.Parse(time.RFC3339Nano, r.CreatedAt)
	return types.Axiom{
		ID:        r.AxiomID,
		Subject:   types.Entity{Kind: r.SubjectKind, Name: r.SubjectName},
		Predicate: r.Predicate,
		Object:    obj,
		CreatedAt: created,
	}, nil
}
