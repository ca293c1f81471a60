package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/owloop/internal/jsonl"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

// loadAllJSONL reads entities.jsonl and axioms.jsonl into the database in one
// transaction: either everything loads or the database stays empty.
// Malformed lines, records that fail validation and duplicates are skipped;
// unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	entities, err := jsonl.Decode[entityRecord](filepath.Join(dataDir, entitiesJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", entitiesJSONL, err)
	}
	for _, r := range entities {
		if (types.Entity{Kind: r.Kind, Name: r.Name}).Validate() != nil || r.EntityID == "" {
			continue
		}
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO entities (entity_id, kind, name, created_at) VALUES (?, ?, ?, ?)",
			r.EntityID, string(r.Kind), r.Name, r.CreatedAt); err != nil {
			return fmt.Errorf("loading entity %s: %w", r.EntityID, err)
		}
	}

	axioms, err := jsonl.Decode[axiomRecord](filepath.Join(dataDir, axiomsJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", axiomsJSONL, err)
	}
	for _, r := range axioms {
		key, err := objectKey(r)
		if errors.Is(err, errSkip) {
			continue
		}
		if _, err := tx.Exec(insertAxiomSQL, axiomArgs(r, key)...); err != nil {
			return fmt.Errorf("loading axiom %s: %w", r.AxiomID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// errSkip marks a JSONL record the loader drops.
var errSkip = errors.New("skip record")

func objectKey(r axiomRecord) (string, error) {
	if r.AxiomID == "" || r.Predicate == "" || r.SubjectName == "" {
		return "", errSkip
	}
	var obj types.Object
	if err := json.Unmarshal(r.Object, &obj); err != nil {
		return "", errSkip
	}
	return obj.Key(), nil
}
