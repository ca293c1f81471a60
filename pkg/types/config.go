package types

import "errors"

// Config selects and parameterizes the axiom store behind an ontology
// reference.
type Config struct {
	Name     string       `json:"name" yaml:"name" mapstructure:"name"`
	Backend  string       `json:"backend" yaml:"backend" mapstructure:"backend"`
	DataDir  string       `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	Buffered bool         `json:"buffered" yaml:"buffered" mapstructure:"buffered"`
	SQLite   SQLiteConfig `json:"sqlite" yaml:"sqlite" mapstructure:"sqlite"`
	Badger   BadgerConfig `json:"badger" yaml:"badger" mapstructure:"badger"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// SQLite sync strategies: when JSONL files are rewritten.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
	SyncBatch     = "batch"
)

// Default SQLite batch parameters.
const (
	DefaultBatchSize     = 100
	DefaultBatchInterval = 5
)

// SQLiteConfig tunes the SQLite store.
type SQLiteConfig struct {
	SyncStrategy string `json:"sync_strategy" yaml:"sync_strategy" mapstructure:"sync_strategy"`
	BatchSize    int    `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`
	// BatchInterval is in seconds.
	BatchInterval int `json:"batch_interval" yaml:"batch_interval" mapstructure:"batch_interval"`
}

// BadgerConfig tunes the Badger store.
type BadgerConfig struct {
	InMemory   bool `json:"in_memory" yaml:"in_memory" mapstructure:"in_memory"`
	SyncWrites bool `json:"sync_writes" yaml:"sync_writes" mapstructure:"sync_writes"`
}

// Config validation errors.
var (
	ErrBackendEmpty         = errors.New("backend must not be empty")
	ErrBackendUnknown       = errors.New("unknown backend")
	ErrSyncStrategyUnknown  = errors.New("unknown sync strategy")
	ErrBatchSizeInvalid     = errors.New("batch size must be positive")
	ErrBatchIntervalInvalid = errors.New("batch interval must be positive")
	ErrDataDirRequired      = errors.New("data dir is required for a persistent store")
)

var knownBackends = map[string]bool{
	BackendSQLite: true,
	BackendBadger: true,
}

var knownSyncStrategies = map[string]bool{
	"":            true,
	SyncImmediate: true,
	SyncOnClose:   true,
	SyncBatch:     true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.Backend {
	case BackendSQLite:
		return c.SQLite.Validate()
	case BackendBadger:
		if !c.Badger.InMemory && c.DataDir == "" {
			return ErrDataDirRequired
		}
	}
	return nil
}

// Validate checks the sync strategy and batch parameters.
func (s SQLiteConfig) Validate() error {
	if !knownSyncStrategies[s.SyncStrategy] {
		return ErrSyncStrategyUnknown
	}
	if s.BatchSize < 0 {
		return ErrBatchSizeInvalid
	}
	if s.BatchInterval < 0 {
		return ErrBatchIntervalInvalid
	}
	return nil
}

// GetSyncStrategy returns the strategy, defaulting to immediate.
func (s SQLiteConfig) GetSyncStrategy() string {
	if s.SyncStrategy == "" {
		return SyncImmediate
	}
	return s.SyncStrategy
}

// GetBatchSize returns the batch size, defaulting to DefaultBatchSize.
func (s SQLiteConfig) GetBatchSize() int {
	if s.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return s.BatchSize
}

// GetBatchInterval returns the batch interval in seconds, defaulting to
// DefaultBatchInterval.
func (s SQLiteConfig) GetBatchInterval() int {
	if s.BatchInterval <= 0 {
		return DefaultBatchInterval
	}
	return s.BatchInterval
}
