package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskflow/internal/models"
	"github.com/balkashynov/taskflow/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new task",
	Long: `Add a new task.

Modes:
  Interactive: taskflow add -i (or just 'taskflow add' with no arguments)
  Quick: taskflow add "Task title" -p high -d "details"

Priority accepts low, medium, high or 1, 2, 3 and defaults to medium.`,
	Args: cobra.ArbitraryArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		title := strings.Join(args, " ")
		description, _ := cmd.Flags().GetString("description")
		priorityInput, _ := cmd.Flags().GetString("priority")

		// No title means interactive
		if len(args) == 0 {
			interactive = true
		}

		if interactive {
			fields := tui.AddTaskFields()
			fields[0].Value = title
			fields[1].Value = description
			fields[2].Value = priorityInput

			form, err := tui.RunForm("Create New Task", fields)
			if err != nil {
				return err
			}
			if !form.Submitted() {
				fmt.Fprintln(cmd.OutOrStdout(), "❌ Task creation cancelled.")
				return nil
			}
			title = form.Value("title")
			description = form.Value("description")
			priorityInput = form.Value("priority")
		}

		priority, err := models.ParsePriority(priorityInput)
		if err != nil {
			priority = models.Priority(strings.TrimSpace(priorityInput))
		}

		task, ok := s.manager.AddTask(title, description, priority)
		if !ok {
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", task.ID, task.Title)
		fmt.Fprintf(cmd.OutOrStdout(), "  Priority: %s\n", task.Priority)
		if task.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  Description: %s\n", task.Description)
		}
		return nil
	}),
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
}
