package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskflow/internal/models"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks, optionally narrowed by priority and status. Both filters must match.",
	Args:    cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		priority, _ := cmd.Flags().GetString("priority")
		status, _ := cmd.Flags().GetString("status")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		filter, err := models.ParseFilter(priority, status)
		if err != nil {
			return err
		}
		tasks := s.store.List(filter)

		if jsonOutput {
			return renderTasksJSON(cmd.OutOrStdout(), taskList{Filter: &filter, Tasks: tasks})
		}

		if len(tasks) == 0 {
			if filter.IsAll() {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found. Use 'taskflow add \"task title\"' to create your first task.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks match the current filters.")
			}
			return nil
		}
		renderTasksTable(cmd.OutOrStdout(), tasks, time.Now(), s.cfg.DateLayout)
		return nil
	}),
}

func init() {
	listCmd.Flags().StringP("priority", "p", "all", "Filter by priority: all, high, medium, low")
	listCmd.Flags().StringP("status", "s", "all", "Filter by status: all, pending, completed")
	listCmd.Flags().Bool("json", false, "Output as JSON")
}
