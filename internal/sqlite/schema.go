package sqlite

// Schema DDL. The SQLite file is a query cache rebuilt from the JSONL files
// on every Attach.
const (
	createEntities = `CREATE TABLE entities (
    entity_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createAxioms = `CREATE TABLE axioms (
    axiom_id TEXT PRIMARY KEY,
    subject_kind TEXT NOT NULL,
    subject_name TEXT NOT NULL,
    predicate TEXT NOT NULL,
    object TEXT NOT NULL,
    object_key TEXT NOT NULL,
    created_at TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxEntitiesUnique = `CREATE UNIQUE INDEX idx_entities_unique ON entities(kind, name);`
	idxAxiomsUnique   = `CREATE UNIQUE INDEX idx_axioms_unique ON axioms(subject_kind, subject_name, predicate, object_key);`
	idxAxiomsSubject  = `CREATE INDEX idx_axioms_subject ON axioms(subject_kind, subject_name, predicate);`
	idxAxiomsPred     = `CREATE INDEX idx_axioms_predicate ON axioms(predicate);`
)

var schemaDDL = []string{
	createEntities,
	createAxioms,
}

var indexDDL = []string{
	idxEntitiesUnique,
	idxAxiomsUnique,
	idxAxiomsSubject,
	idxAxiomsPred,
}

// JSONL file names inside DataDir.
const (
	entitiesJSONL = "entities.jsonl"
	axiomsJSONL   = "axioms.jsonl"
	databaseFile  = "owloop.db"
)
