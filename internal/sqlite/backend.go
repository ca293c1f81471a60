// Package sqlite implements types.AxiomStore with SQLite as the query engine
// and JSONL files as the source of truth.
//
// On Attach the database is recreated and loaded from entities.jsonl and
// axioms.jsonl in DataDir. Every write goes to SQLite first and the touched
// table is then rewritten to its JSONL file, immediately or later depending
// on the sync strategy. An empty DataDir keeps everything in memory.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Backend is the SQLite axiom store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	logger   *slog.Logger

	syncStrategy  string
	batchSize     int
	batchInterval time.Duration
	pendingWrites []pendingWrite
	batchTimer    *time.Timer
	batchMu       sync.Mutex
}

// pendingWrite is a deferred JSONL rewrite of one table.
type pendingWrite struct {
	file    string
	persist func() error
}

// NewBackend creates a detached backend. A nil logger uses slog.Default.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger.With("component", "sqlite")}
}

// Open creates a backend and attaches it to cfg.
func Open(cfg types.Config, logger *slog.Logger) (*Backend, error) {
	b := NewBackend(logger)
	if err := b.Attach(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

// Attach creates DataDir if needed, builds a fresh schema and loads the JSONL
// files. Returns ErrAlreadyOpen if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dsn := ":memory:"
	if config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		dsn = filepath.Join(config.DataDir, databaseFile)
		// The database is a cache; JSONL is authoritative.
		_ = os.Remove(dsn)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.dataDir = config.DataDir

	if b.dataDir != "" {
		if err := b.initJSONLFiles(); err != nil {
			db.Close()
			return err
		}
		if err := loadAllJSONL(db, b.dataDir); err != nil {
			db.Close()
			return fmt.Errorf("load JSONL: %w", err)
		}
	}

	b.syncStrategy = config.SQLite.GetSyncStrategy()
	b.batchSize = config.SQLite.GetBatchSize()
	b.batchInterval = time.Duration(config.SQLite.GetBatchInterval()) * time.Second
	b.pendingWrites = nil
	b.attached = true

	if b.syncStrategy == types.SyncBatch && b.batchInterval > 0 {
		b.startBatchTimer()
	}
	b.logger.Debug("attached", "data_dir", b.dataDir, "sync", b.syncStrategy)
	return nil
}

// Detach flushes pending writes and closes the database. Detach is
// idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.stopBatchTimer()

	if err := b.flushPendingWritesLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Close implements types.AxiomStore.
func (b *Backend) Close() error { return b.Detach() }

// Flush writes every pending JSONL rewrite.
func (b *Backend) Flush(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}
	return b.flushPendingWritesLocked()
}

func (b *Backend) initJSONLFiles() error {
	for _, name := range []string{entitiesJSONL, axiomsJSONL} {
		path := filepath.Join(b.dataDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, nil, 0o644); err != nil {
				return fmt.Errorf("creating %s: %w", name, err)
			}
		}
	}
	return nil
}

// persist rewrites file now or queues the rewrite, per the sync strategy.
// The caller must hold b.mu.
func (b *Backend) persist(file string, write func() error) error {
	if b.dataDir == "" {
		return nil
	}
	if b.shouldPersistImmediately() {
		return write()
	}
	b.queueWrite(file, write)
	return nil
}

func (b *Backend) shouldPersistImmediately() bool {
	return b.syncStrategy == types.SyncImmediate || b.syncStrategy == ""
}

// queueWrite adds a rewrite to the pending queue and flushes when the batch
// is full. The caller must hold b.mu.
func (b *Backend) queueWrite(file string, persist func() error) {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	b.pendingWrites = append(b.pendingWrites, pendingWrite{file: file, persist: persist})

	if b.syncStrategy == types.SyncBatch && b.batchSize > 0 && len(b.pendingWrites) >= b.batchSize {
		if err := b.flushPendingWritesBatchLocked(); err != nil {
			b.logger.Warn("batch flush failed", "error", err)
		}
	}
}

// flushPendingWritesLocked flushes the queue. The caller must hold b.mu.
func (b *Backend) flushPendingWritesLocked() error {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()
	return b.flushPendingWritesBatchLocked()
}

// flushPendingWritesBatchLocked runs each queued file rewrite once; a
// rewrite reads the whole table, so only the latest per file matters. The
// caller must hold b.batchMu.
func (b *Backend) flushPendingWritesBatchLocked() error {
	if len(b.pendingWrites) == 0 {
		return nil
	}
	done := make(map[string]bool)
	for i := len(b.pendingWrites) - 1; i >= 0; i-- {
		pw := b.pendingWrites[i]
		if done[pw.file] {
			continue
		}
		if err := pw.persist(); err != nil {
			return fmt.Errorf("flush %s: %w", pw.file, err)
		}
		done[pw.file] = true
	}
	b.pendingWrites = nil
	return nil
}

func (b *Backend) startBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		return
	}
	b.batchTimer = time.AfterFunc(b.batchInterval, func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if !b.attached {
			return
		}
		if err := b.flushPendingWritesLocked(); err != nil {
			b.logger.Warn("interval flush failed", "error", err)
		}

		b.batchMu.Lock()
		if b.batchTimer != nil && b.attached {
			b.batchTimer.Reset(b.batchInterval)
		}
		b.batchMu.Unlock()
	})
}

func (b *Backend) stopBatchTimer() {
	b.batchMu.Lock()
	defer b.batchMu.Unlock()

	if b.batchTimer != nil {
		b.batchTimer.Stop()
		b.batchTimer = nil
	}
}
