package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/balkashynov/taskflow/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings layers TASKFLOW_* variables and persistent flags over the config file
var settings = config.NewViper()

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "A terminal task list manager",
	Long: `taskflow keeps a prioritised task list on your machine.

Run it without a command to open the interactive list, or use the
commands below for quick one-shot changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "taskflow %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func bindFlag(v *viper.Viper, key, flag string) {
	_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ~/.taskflow/config.toml)")
	flags.String("db", "", "Storage file path")
	flags.String("storage", "", "Storage backend: sqlite, file")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	bindFlag(settings, config.KeyConfig, "config")
	bindFlag(settings, config.KeyDBPath, "db")
	bindFlag(settings, config.KeyStorage, "storage")
	bindFlag(settings, config.KeyLogLevel, "log-level")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(undoneCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
