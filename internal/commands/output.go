package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskflow/internal/models"
	"github.com/balkashynov/taskflow/internal/notify"
	"github.com/balkashynov/taskflow/internal/view"
)

// consoleNotifier prints notifications as single lines
type consoleNotifier struct {
	out    io.Writer
	errOut io.Writer
}

func newConsoleNotifier(cmd *cobra.Command) consoleNotifier {
	return consoleNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
}

func (c consoleNotifier) Notify(message string, kind notify.Kind) {
	switch kind {
	case notify.KindError:
		fmt.Fprintf(c.errOut, "❌ %s\n", message)
	case notify.KindWarning:
		fmt.Fprintf(c.errOut, "⚠️  %s\n", message)
	case notify.KindSuccess:
		fmt.Fprintf(c.out, "✅ %s\n", message)
	default:
		fmt.Fprintf(c.out, "%s\n", message)
	}
}

// parseID reads a positive task id argument
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task ID '%s'", arg)
	}
	return id, nil
}

// renderTasksTable prints tasks in fixed columns for 80-character terminals
func renderTasksTable(w io.Writer, tasks []models.Task, now time.Time, layout string) {
	fmt.Fprintf(w, "%-4s %-10s %-8s %-12s %s\n", "ID", "STATUS", "PRIORITY", "CREATED", "TITLE")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, task := range tasks {
		status, _ := view.StatusLabel(task.Status)
		priority, _ := view.PriorityLabel(task.Priority)

		title := task.Title
		if len([]rune(title)) > 40 {
			title = string([]rune(title)[:37]) + "..."
		}

		fmt.Fprintf(w, "%-4d %-10s %-8s %-12s %s\n",
			task.ID,
			status,
			priority,
			view.FormatRelativeDate(task.CreatedAt, now, layout),
			title)
	}
}

type taskList struct {
	Query  string         `json:"query,omitempty"`
	Filter *models.Filter `json:"filter,omitempty"`
	Count  int            `json:"count"`
	Tasks  []models.Task  `json:"tasks"`
}

// renderTasksJSON prints tasks wrapped with their count
func renderTasksJSON(w io.Writer, result taskList) error {
	if result.Tasks == nil {
		result.Tasks = []models.Task{}
	}
	result.Count = len(result.Tasks)
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
