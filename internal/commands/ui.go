package commands

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/balkashynov/taskflow/internal/config"
	"github.com/balkashynov/taskflow/internal/notify"
	"github.com/balkashynov/taskflow/internal/tui"
	"github.com/balkashynov/taskflow/internal/view"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive task list",
	Args:  cobra.NoArgs,
	RunE:  runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	anim := tui.NewAnimator(nil)

	var sink *notify.Sink
	toasts := func(cfg config.Config) notify.Notifier {
		sink = notify.New(notify.WithDisplay(cfg.NotificationDuration()))
		return sink
	}

	s, err := openSession(settings, toasts, view.WithAnimator(anim))
	if err != nil {
		return fmt.Errorf("failed to start taskflow: %w", err)
	}
	defer s.close()

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	s.logger.Info("opening task list", "tasks", len(s.store.All()))
	return tui.Run(s.manager, sink, anim, tui.Options{
		Keys:      tui.NewKeyMap(s.cfg.Keys),
		ExportDir: dir,
		Copy:      clipboard.WriteAll,
	})
}
