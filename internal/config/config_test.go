package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskflow/internal/kv"
	"github.com/balkashynov/taskflow/internal/models"
)

func TestLoadOrCreate_WritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := filepath.Join(dir, DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, kv.BackendSQLite, cfg.Storage)
	assert.Equal(t, filepath.Join(dir, DefaultSQLiteName), cfg.DBPath)
	assert.Equal(t, "n", cfg.Keys.Add)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "notification_seconds = 3")
}

func TestLoadOrCreate_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `storage = "file"
db_path = "data/mine.json"
notification_seconds = 5
default_status_filter = "pending"

[keys]
add = "a"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, kv.BackendFile, cfg.Storage)
	assert.Equal(t, filepath.Join(dir, "data", "mine.json"), cfg.DBPath)
	assert.Equal(t, "a", cfg.Keys.Add)
	assert.Equal(t, "e", cfg.Keys.Edit, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.NotificationDuration())

	f, err := cfg.Filter()
	require.NoError(t, err)
	assert.Equal(t, models.Filter{Priority: "all", Status: "pending"}, f)
}

func TestLoadOrCreate_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("storage = ["), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	t.Setenv("TASKFLOW_CONFIG", path)
	t.Setenv("TASKFLOW_STORAGE", "file")
	t.Setenv("TASKFLOW_LOG_LEVEL", "debug")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, kv.BackendFile, cfg.Storage)
	assert.Equal(t, filepath.Join(dir, DefaultFileName), cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestApplyOverrides_ExplicitPathWins(t *testing.T) {
	v := NewViper()
	v.Set(KeyStorage, "file")
	v.Set(KeyDBPath, "/tmp/x.json")

	cfg := ApplyOverrides(Default().resolve("/home/u/.taskflow"), v, "/home/u/.taskflow")
	assert.Equal(t, "/tmp/x.json", cfg.DBPath)
	assert.Equal(t, kv.BackendFile, cfg.Storage)
}

func TestBindings(t *testing.T) {
	assert.Equal(t, []string{"q", "ctrl+c"}, Bindings("q, ctrl+c"))
	assert.Equal(t, []string{" "}, Bindings(" "))
	assert.Empty(t, Bindings(""))
}
