package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/taskflow/internal/app"
)

var exportCmd = &cobra.Command{
	Use:   "export [file or directory]",
	Short: "Export all tasks to a backup file",
	Long: `Export all tasks to a backup file.

Without a path the backup is written to the current directory as
taskflow_backup_YYYY-MM-DD.json (or .yaml with --format yaml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := app.ParseFormat(formatName)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if written, ok := s.manager.Export(path, format); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", written)
		}
		return nil
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all tasks with a backup file",
	Long: `Replace all tasks with the contents of a backup file.

JSON and YAML backups are accepted; the format is picked from the file
extension. The whole file is validated first, and nothing changes if any
record is malformed.`,
	Args: cobra.ExactArgs(1),
	RunE: withSession(func(cmd *cobra.Command, args []string, s *session) error {
		if s.manager.ImportFile(args[0]) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d tasks loaded, next id #%d\n", len(s.store.All()), s.store.NextID())
		}
		return nil
	}),
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Backup format: json, yaml")
}
