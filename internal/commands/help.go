package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for taskflow",
	Long:  `Display detailed help for all taskflow commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), customHelp)
	},
}

const customHelp = `
 _            _     __ _
| |_ __ _ ___| | __/ _| | _____      __
| __/ _' / __| |/ / |_| |/ _ \ \ /\ / /
| || (_| \__ \   <|  _| | (_) \ V  V /
 \__\__,_|___/_|\_\_| |_|\___/ \_/\_/

taskflow - prioritised task list for the terminal

COMMANDS:

  (no command), ui        Open the interactive task list

    Keys:
      ↑/↓ or k/j    Navigate tasks
      space         Toggle pending/completed
      n             New task
      e             Edit title, then description (esc cancels)
      d             Delete (asks y/n)
      /             Search title and description
      p / s         Cycle priority / status filter
      esc           Clear filters and search
      ctrl+e        Export backup to the current directory
      i             Import a backup file
      y             Copy task title
      q             Quit

  add <title>             Create a task
    -p, --priority        low|medium|high or 1-3 (default medium)
    -d, --description     Task description
    -i, --interactive     Fill the fields in a form

  ls                      List tasks
    -p, --priority        all|high|medium|low
    -s, --status          all|pending|completed
    --json                JSON output

  search <query>          Case insensitive search in title and description
    --json                JSON output

  done <id>               Mark task as completed
  undone <id>             Mark task as pending
  edit <id>               Edit title and description
    -t, --title           New title without prompting
    -d, --description     New description without prompting
  rm <id>                 Delete a task

  export [path]           Write a backup (taskflow_backup_YYYY-MM-DD.json)
    -f, --format          json|yaml
  import <file>           Replace all tasks with a backup

  stats                   Show task counts
  version                 Show version
  help                    Show this help

GLOBAL FLAGS:
  --config <file>         Config file (default ~/.taskflow/config.toml)
  --storage <backend>     sqlite|file
  --db <path>             Storage file
  --log-level <level>     debug|info|warn|error

Every global flag can also be set with a TASKFLOW_* environment variable,
for example TASKFLOW_STORAGE=file.

`
