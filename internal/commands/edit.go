package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskflow/internal/app"
	"github.com/balkashynov/taskflow/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <task_id>",
	Short: "Edit a task's title and description",
	Long: `Edit a task's title and description.

Without flags, taskflow asks for the new title and then the new description,
each pre-filled with the current value. Pressing esc at either prompt leaves
the task untouched.

Usage:
  taskflow edit 42                      - Edit task 42 interactively
  taskflow edit 42 --title "New title"  - Change only the title`,
	Args: cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, ok := s.store.Get(id); !ok {
			return fmt.Errorf("task #%d not found", id)
		}

		var prompter app.Prompter = tui.Prompter{}
		titleSet := cmd.Flags().Changed("title")
		descriptionSet := cmd.Flags().Changed("description")
		if titleSet || descriptionSet {
			title, _ := cmd.Flags().GetString("title")
			description, _ := cmd.Flags().GetString("description")
			prompter = app.PromptFunc(func(field, current string) (string, bool) {
				switch {
				case field == "title" && titleSet:
					return title, true
				case field == "description" && descriptionSet:
					return description, true
				}
				return current, true
			})
		}

		cancelled := false
		recorded := app.PromptFunc(func(field, current string) (string, bool) {
			value, ok := prompter.Prompt(field, current)
			cancelled = cancelled || !ok
			return value, ok
		})

		if task, ok := s.manager.EditTask(id, recorded); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Task #%d: %s\n", task.ID, task.Title)
		} else if cancelled {
			fmt.Fprintln(cmd.OutOrStdout(), "❌ Edit cancelled.")
		}
		return nil
	}),
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
}
