package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		return setCompleted(cmd, s, args[0], true)
	}),
}

var undoneCmd = &cobra.Command{
	Use:   "undone [task-id]",
	Short: "Mark a completed task back to pending",
	Args:  cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		return setCompleted(cmd, s, args[0], false)
	}),
}

// setCompleted toggles the task only when it is not already in the wanted state
func setCompleted(cmd *cobra.Command, s *session, arg string, completed bool) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}
	task, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("task #%d not found", id)
	}
	if task.IsCompleted() == completed {
		fmt.Fprintf(cmd.OutOrStdout(), "Task #%d is already %s: %s\n", task.ID, task.Status, task.Title)
		return nil
	}

	task, ok = s.manager.ToggleTask(id)
	if ok && task.CompletedAt != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Completed at: %s\n", task.CompletedAt.Format("15:04:05"))
	}
	return nil
}
