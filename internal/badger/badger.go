// Package badger implements types.AxiomStore on an embedded BadgerDB.
//
// Key layout, all values JSON:
//
//	e/<seq>                 declared entity
//	ei/<kind>/<name>        entity index -> seq
//	a/<seq>                 axiom
//	ai/<statement key>      axiom index -> seq
//
// Sequence numbers are big-endian so prefix iteration yields insertion
// order.
package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

var (
	prefixEntity      = []byte("e/")
	prefixEntityIndex = []byte("ei/")
	prefixAxiom       = []byte("a/")
	prefixAxiomIndex  = []byte("ai/")
	sequenceKey       = []byte("seq")
)

// Config holds configuration for a Badger store.
type Config struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps everything in RAM. Useful for testing.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging. Nil disables it.
	Logger *slog.Logger
}

// ConfigFrom maps an owloop config onto a Badger config.
func ConfigFrom(cfg types.Config, logger *slog.Logger) Config {
	return Config{
		Path:       cfg.DataDir,
		InMemory:   cfg.Badger.InMemory,
		SyncWrites: cfg.Badger.SyncWrites,
		Logger:     logger,
	}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is the Badger axiom store.
type Store struct {
	mu       sync.Mutex
	db       *badger.DB
	seq      *badger.Sequence
	inMemory bool
	closed   bool
}

// Open opens the database described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, types.ErrDataDirRequired
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger.With("component", "badger")})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	seq, err := db.GetSequence(sequenceKey, 128)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("lease sequence: %w", err)
	}
	return &Store{db: db, seq: seq, inMemory: cfg.InMemory}, nil
}

func seqKey(prefix []byte, n uint64) []byte {
	k := make([]byte, len(prefix)+8)
	copy(k, prefix)
	binary.BigEndian.PutUint64(k[len(prefix):], n)
	return k
}

func entityIndexKey(e types.Entity) []byte {
	return append(append([]byte{}, prefixEntityIndex...), string(e.Kind)+"/"+e.Name...)
}

func axiomIndexKey(s types.Statement) []byte {
	return append(append([]byte{}, prefixAxiomIndex...), s.Key()...)
}

func (s *Store) check() error {
	if s.closed {
		return types.ErrStoreDetached
	}
	return nil
}

// Declare records e unless it is already declared.
func (s *Store) Declare(_ context.Context, e types.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}

	n, err := s.seq.Next()
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		idx := entityIndexKey(e)
		if _, err := txn.Get(idx); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		val, err := json.Marshal(e)
		if err != nil {
			return err
		}
		key := seqKey(prefixEntity, n)
		if err := txn.Set(key, val); err != nil {
			return err
		}
		return txn.Set(idx, key)
	})
}

// Entities returns the declared entities in declaration order.
func (s *Store) Entities(context.Context) ([]types.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	var out []types.Entity
	err := s.scan(prefixEntity, func(val []byte) error {
		var e types.Entity
		if err := json.Unmarshal(val, &e); err != nil {
			return fmt.Errorf("decoding entity: %w", err)
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// Insert stores a. It returns false if the statement is already stored.
func (s *Store) Insert(_ context.Context, a types.Axiom) (bool, error) {
	if a.ID == "" {
		a.ID = types.NewID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return false, err
	}

	n, err := s.seq.Next()
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}
	inserted := false
	err = s.db.Update(func(txn *badger.Txn) error {
		idx := axiomIndexKey(a.Statement())
		if _, err := txn.Get(idx); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		val, err := json.Marshal(a)
		if err != nil {
			return err
		}
		key := seqKey(prefixAxiom, n)
		if err := txn.Set(key, val); err != nil {
			return err
		}
		inserted = true
		return txn.Set(idx, key)
	})
	if err != nil {
		return false, fmt.Errorf("inserting axiom: %w", err)
	}
	return inserted, nil
}

// Delete removes the axiom with statement st.
func (s *Store) Delete(_ context.Context, st types.Statement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return false, err
	}

	deleted := false
	err := s.db.Update(func(txn *badger.Txn) error {
		idx := axiomIndexKey(st)
		item, err := txn.Get(idx)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		key, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		deleted = true
		return txn.Delete(idx)
	})
	if err != nil {
		return false, fmt.Errorf("deleting axiom: %w", err)
	}
	return deleted, nil
}

// Axioms returns the stored axioms matching f in insertion order.
func (s *Store) Axioms(_ context.Context, f types.AxiomFilter) ([]types.Axiom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}

	var out []types.Axiom
	err := s.scan(prefixAxiom, func(val []byte) error {
		var a types.Axiom
		if err := json.Unmarshal(val, &a); err != nil {
			return fmt.Errorf("decoding axiom: %w", err)
		}
		if f.Matches(a) {
			out = append(out, a)
		}
		return nil
	})
	return out, err
}

func (s *Store) scan(prefix []byte, fn func(val []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// Flush syncs the database to disk.
func (s *Store) Flush(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if s.inMemory {
		return nil
	}
	return s.db.Sync()
}

// Close releases the sequence lease and closes the database. Close is
// idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.seq.Release(); err != nil {
		s.db.Close()
		return fmt.Errorf("release sequence: %w", err)
	}
	return s.db.Close()
}

var _ types.AxiomStore = (*Store)(nil)
