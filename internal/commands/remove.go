package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "rm [task-id]",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		task, ok := s.store.Get(id)
		if !ok {
			return fmt.Errorf("task #%d not found", id)
		}

		if s.manager.DeleteTask(id) {
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed task #%d: %s\n", task.ID, task.Title)
		}
		return nil
	}),
}
