package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search tasks by title or description",
	Long: `Search tasks by title or description.

Matching is a case insensitive substring match; the query is not split into words.`,
	Args: cobra.MinimumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		query := strings.Join(args, " ")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		tasks := s.store.Search(query)
		if jsonOutput {
			return renderTasksJSON(cmd.OutOrStdout(), taskList{Query: query, Tasks: tasks})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Search results for '%s' (%d found):\n", query, len(tasks))
		if len(tasks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No tasks found matching your search.")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout())
		renderTasksTable(cmd.OutOrStdout(), tasks, time.Now(), s.cfg.DateLayout)
		return nil
	}),
}

func init() {
	searchCmd.Flags().Bool("json", false, "Output as JSON")
}
