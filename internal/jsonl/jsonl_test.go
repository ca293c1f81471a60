package jsonl

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestEncodeDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	want := []record{{ID: "1", Name: "Robot"}, {ID: "2", Name: "Drone"}}

	require.NoError(t, Encode(path, want))
	got, err := Decode[record](path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"1\",\"name\":\"Robot\"}\n{\"id\":\"2\",\"name\":\"Drone\"}\n", string(data))
}

func TestReadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.jsonl")
	content := "{\"id\":\"1\"}\n\nnot json\n{\"id\":\"2\"}\n{broken\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := Read(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"id":"2"}`, string(records[1]))
}

func TestReadMissingFile(t *testing.T) {
	records, err := Read(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.jsonl")
	require.NoError(t, Write(path, []json.RawMessage{json.RawMessage(`{"a":1}`)}))
	require.NoError(t, Write(path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}
