package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t    *testing.T
	dir  string
	base []string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return &cli{
		t:   t,
		dir: dir,
		base: []string{
			"--config", filepath.Join(dir, "config.toml"),
			"--storage", "file",
			"--db", filepath.Join(dir, "tasks.json"),
		},
	}
}

// run executes one command line and returns combined output
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(append([]string{}, args...), c.base...))
	defer resetFlags(rootCmd)

	err := rootCmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

// resetFlags restores defaults so the package-level commands can run again
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func listJSON(t *testing.T, c *cli, args ...string) taskList {
	t.Helper()
	out := c.mustRun(append([]string{"ls", "--json"}, args...)...)
	var result taskList
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	return result
}

func TestCLI_SeedAddToggleDelete(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("add", "Buy", "milk", "-p", "low")
	assert.Contains(t, out, "✅ Task added successfully")
	assert.Contains(t, out, "Created task #4: Buy milk")

	out = c.mustRun("done", "4")
	assert.Contains(t, out, "Task completed")

	out = c.mustRun("done", "4")
	assert.Contains(t, out, "already completed")

	c.mustRun("rm", "1")

	result := listJSON(t, c)
	assert.Equal(t, 3, result.Count)
	ids := []int{}
	for _, task := range result.Tasks {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int{2, 3, 4}, ids)
	assert.Equal(t, "completed", string(result.Tasks[2].Status))
}

func TestCLI_FiltersAndSearch(t *testing.T) {
	c := newCLI(t)

	result := listJSON(t, c, "--priority", "low", "--status", "completed")
	require.Equal(t, 1, result.Count)
	assert.Equal(t, 3, result.Tasks[0].ID)

	out := c.mustRun("ls", "--status", "pending")
	assert.Contains(t, out, "Design the main interface")
	assert.NotContains(t, out, "Test the application")

	_, err := c.run("ls", "--priority", "urgent")
	assert.Error(t, err)

	out = c.mustRun("search", "BACKEND")
	assert.Contains(t, out, "(1 found)")
}

func TestCLI_AddBlankTitleIsRejected(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("add", "   ")
	assert.Contains(t, out, "Please enter a task title")
	assert.Equal(t, 3, listJSON(t, c).Count)
}

func TestCLI_EditWithFlags(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("edit", "2", "--title", "Build the API")
	assert.Contains(t, out, "Task updated")

	result := listJSON(t, c)
	assert.Equal(t, "Build the API", result.Tasks[1].Title)
	assert.Equal(t, "Implement the APIs needed to manage tasks and store data.", result.Tasks[1].Description)

	out = c.mustRun("edit", "2", "--title", " ")
	assert.Contains(t, out, "Please enter a valid title")

	_, err := c.run("edit", "99", "--title", "x")
	assert.Error(t, err)
}

func TestCLI_ExportImport(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("export", c.dir, "--format", "yaml")
	assert.Contains(t, out, "Tasks exported successfully")

	matches, err := filepath.Glob(filepath.Join(c.dir, "taskflow_backup_*.yaml"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	c.mustRun("rm", "2")
	out = c.mustRun("import", matches[0])
	assert.Contains(t, out, "Tasks imported successfully")
	assert.Contains(t, out, "3 tasks loaded, next id #4")

	bad := filepath.Join(c.dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id":1}]`), 0o644))
	out = c.mustRun("import", bad)
	assert.Contains(t, out, "Failed to import file")
	assert.Equal(t, 3, listJSON(t, c).Count)
}

func TestCLI_Stats(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("stats", "--json")

	var stats map[string]int
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, map[string]int{"total": 3, "pending": 2, "completed": 1}, stats)
}

func TestParseID(t *testing.T) {
	id, err := parseID("#12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = parseID("0")
	assert.Error(t, err)
	_, err = parseID("abc")
	assert.Error(t, err)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 5, 10))
	assert.Equal(t, "█", bar(1, 100, 10))
	assert.Equal(t, "█████", bar(1, 2, 10))
}
