package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/owloop/internal/jsonl"
	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Declare records e unless it is already declared.
func (b *Backend) Declare(ctx context.Context, e types.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	res, err := b.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO entities (entity_id, kind, name, created_at) VALUES (?, ?, ?, ?)",
		types.NewID(), string(e.Kind), e.Name, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("declaring %s: %w", e, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	return b.persist(entitiesJSONL, b.persistEntitiesJSONL)
}

// Entities returns the declared entities in declaration order.
func (b *Backend) Entities(ctx context.Context) ([]types.Entity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.QueryContext(ctx, "SELECT kind, name FROM entities ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var out []types.Entity
	for rows.Next() {
		var kind, name string
		if err := rows.Scan(&kind, &name); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		out = append(out, types.Entity{Kind: types.EntityKind(kind), Name: name})
	}
	return out, rows.Err()
}

// Insert stores a. It returns false if the statement is already stored.
func (b *Backend) Insert(ctx context.Context, a types.Axiom) (bool, error) {
	if a.ID == "" {
		a.ID = types.NewID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	rec, err := dehydrateAxiom(a)
	if err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return false, types.ErrStoreDetached
	}

	res, err := b.db.ExecContext(ctx, insertAxiomSQL, axiomArgs(rec, a.Object.Key())...)
	if err != nil {
		return false, fmt.Errorf("inserting axiom: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}
	return true, b.persist(axiomsJSONL, b.persistAxiomsJSONL)
}

// Delete removes the axiom with statement s. It returns false if no such
// axiom is stored.
func (b *Backend) Delete(ctx context.Context, s types.Statement) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return false, types.ErrStoreDetached
	}

	res, err := b.db.ExecContext(ctx,
		"DELETE FROM axioms WHERE subject_kind = ? AND subject_name = ? AND predicate = ? AND object_key = ?",
		string(s.Subject.Kind), s.Subject.Name, string(s.Predicate), s.Object.Key())
	if err != nil {
		return false, fmt.Errorf("deleting axiom: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}
	return true, b.persist(axiomsJSONL, b.persistAxiomsJSONL)
}

// Axioms returns the stored axioms matching f in insertion order.
func (b *Backend) Axioms(ctx context.Context, f types.AxiomFilter) ([]types.Axiom, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var (
		where []string
		args  []any
	)
	if !f.Subject.IsZero() {
		where = append(where, "subject_kind = ?", "subject_name = ?")
		args = append(args, string(f.Subject.Kind), f.Subject.Name)
	}
	if f.Predicate != "" {
		where = append(where, "predicate = ?")
		args = append(args, string(f.Predicate))
	}
	query := "SELECT " + axiomColumns + " FROM axioms"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid"

	return b.queryAxioms(ctx, query, args...)
}

const axiomColumns = "axiom_id, subject_kind, subject_name, predicate, object, created_at"

const insertAxiomSQL = `INSERT OR IGNORE INTO axioms
    (axiom_id, subject_kind, subject_name, predicate, object, object_key, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?)`

func axiomArgs(r axiomRecord, objectKey string) []any {
	return []any{r.AxiomID, string(r.SubjectKind), r.SubjectName, string(r.Predicate), string(r.Object), objectKey, r.CreatedAt}
}

func (b *Backend) queryAxioms(ctx context.Context, query string, args ...any) ([]types.Axiom, error) {
	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying axioms: %w", err)
	}
	defer rows.Close()

	var out []types.Axiom
	for rows.Next() {
		rec, err := scanAxiom(rows)
		if err != nil {
			return nil, err
		}
		a, err := hydrateAxiom(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAxiom(rows *sql.Rows) (axiomRecord, error) {
	var (
		r               axiomRecord
		kind, pred, obj string
	)
	if err := rows.Scan(&r.AxiomID, &kind, &r.SubjectName, &pred, &obj, &r.CreatedAt); err != nil {
		return r, fmt.Errorf("scanning axiom: %w", err)
	}
	r.SubjectKind = types.EntityKind(kind)
	r.Predicate = types.Predicate(pred)
	r.Object = json.RawMessage(obj)
	return r, nil
}

// JSONL persistence. Each helper reads the whole table and rewrites its
// file atomically. The caller must hold b.mu.

func (b *Backend) persistEntitiesJSONL() error {
	if b.db == nil {
		return types.ErrStoreDetached
	}
	rows, err := b.db.Query("SELECT entity_id, kind, name, created_at FROM entities ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("reading entities for JSONL: %w", err)
	}
	defer rows.Close()

	var records []entityRecord
	for rows.Next() {
		var r entityRecord
		var kind string
		if err := rows.Scan(&r.EntityID, &kind, &r.Name, &r.CreatedAt); err != nil {
			return fmt.Errorf("scanning entity for JSONL: %w", err)
		}
		r.Kind = types.EntityKind(kind)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return jsonl.Encode(filepath.Join(b.dataDir, entitiesJSONL), records)
}

func (b *Backend) persistAxiomsJSONL() error {
	if b.db == nil {
		return types.ErrStoreDetached
	}
	rows, err := b.db.Query("SELECT " + axiomColumns + " FROM axioms ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("reading axioms for JSONL: %w", err)
	}
	defer rows.Close()

	var records []axiomRecord
	for rows.Next() {
		r, err := scanAxiom(rows)
		if err != nil {
			return err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return jsonl.Encode(filepath.Join(b.dataDir, axiomsJSONL), records)
}

var _ types.AxiomStore = (*Backend)(nil)
