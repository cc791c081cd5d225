package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Storage {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := OpenSQLite(filepath.Join(dir, "nested", "taskflow.db"), false)
	require.NoError(t, err)
	fileStore, err := OpenFile(filepath.Join(dir, "taskflow.json"))
	require.NoError(t, err)

	backends := map[string]Storage{
		BackendSQLite: sqliteStore,
		BackendFile:   fileStore,
		BackendMemory: NewMemory(),
	}
	t.Cleanup(func() {
		for _, b := range backends {
			_ = b.Close()
		}
	})
	return backends
}

func TestStorage_GetMissingKey(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := s.Get("tasks")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)
		})
	}
}

func TestStorage_SetOverwrites(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("counter", "4"))
			require.NoError(t, s.Set("counter", "5"))
			require.NoError(t, s.Set("tasks", "[]"))

			v, ok, err := s.Get("counter")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "5", v)

			v, ok, err = s.Get("tasks")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "[]", v)
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")

	s, err := OpenSQLite(path, false)
	require.NoError(t, err)
	require.NoError(t, s.Set("counter", "9"))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, false)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("counter")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "9", v)
}

func TestFile_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	_, _, err = f.Get("tasks")
	assert.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", filepath.Join(t.TempDir(), "x"), false)
	assert.Error(t, err)
}
