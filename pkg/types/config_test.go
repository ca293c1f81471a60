package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
		},
		{
			name:   "sqlite with empty DataDir is valid at config level",
			config: Config{Backend: BackendSQLite},
		},
		{
			name:    "unknown sync strategy",
			config:  Config{Backend: BackendSQLite, SQLite: SQLiteConfig{SyncStrategy: "sometimes"}},
			wantErr: ErrSyncStrategyUnknown,
		},
		{
			name:    "negative batch size",
			config:  Config{Backend: BackendSQLite, SQLite: SQLiteConfig{SyncStrategy: SyncBatch, BatchSize: -1}},
			wantErr: ErrBatchSizeInvalid,
		},
		{
			name:    "negative batch interval",
			config:  Config{Backend: BackendSQLite, SQLite: SQLiteConfig{BatchInterval: -3}},
			wantErr: ErrBatchIntervalInvalid,
		},
		{
			name:   "in-memory badger needs no data dir",
			config: Config{Backend: BackendBadger, Badger: BadgerConfig{InMemory: true}},
		},
		{
			name:    "persistent badger needs a data dir",
			config:  Config{Backend: BackendBadger},
			wantErr: ErrDataDirRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSQLiteConfigDefaults(t *testing.T) {
	var s SQLiteConfig
	assert.Equal(t, SyncImmediate, s.GetSyncStrategy())
	assert.Equal(t, DefaultBatchSize, s.GetBatchSize())
	assert.Equal(t, DefaultBatchInterval, s.GetBatchInterval())

	s = SQLiteConfig{SyncStrategy: SyncOnClose, BatchSize: 7, BatchInterval: 2}
	assert.Equal(t, SyncOnClose, s.GetSyncStrategy())
	assert.Equal(t, 7, s.GetBatchSize())
	assert.Equal(t, 2, s.GetBatchInterval())
}
