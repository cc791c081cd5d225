package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task counts",
	Long: `Show how many tasks exist and how many are pending or completed.

Example output:
  Total      5
  Pending    3  ███████████████████
  Completed  2  ████████████`,
	Args: cobra.NoArgs,
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		stats := s.store.Stats()

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			data, err := json.MarshalIndent(map[string]int{
				"total":     stats.Total,
				"pending":   stats.Pending,
				"completed": stats.Completed,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", "Total", stats.Total)
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d  %s\n", "Pending", stats.Pending, bar(stats.Pending, stats.Total, 30))
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d  %s\n", "Completed", stats.Completed, bar(stats.Completed, stats.Total, 30))
		return nil
	}),
}

// bar draws part/total as a block bar of at most width cells
func bar(part, total, width int) string {
	if total <= 0 || part <= 0 {
		return ""
	}
	cells := part * width / total
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat("█", cells)
}

func init() {
	statsCmd.Flags().Bool("json", false, "Output as JSON")
}
