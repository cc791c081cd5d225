package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/balkashynov/taskflow/internal/app"
	"github.com/balkashynov/taskflow/internal/config"
	"github.com/balkashynov/taskflow/internal/kv"
	"github.com/balkashynov/taskflow/internal/logging"
	"github.com/balkashynov/taskflow/internal/models"
	"github.com/balkashynov/taskflow/internal/notify"
	"github.com/balkashynov/taskflow/internal/store"
	"github.com/balkashynov/taskflow/internal/view"
)

// session is everything a command needs, opened once per invocation
type session struct {
	cfg     config.Config
	logger  *slog.Logger
	storage kv.Storage
	store   *store.TaskStore
	manager *app.Manager
	closers []func() error
}

// openSession loads config, starts logging, opens storage and wires the
// store, view and manager together. notifierFor builds the notifier once
// the config is known.
func openSession(v *viper.Viper, notifierFor func(config.Config) notify.Notifier, viewOpts ...view.Option) (*session, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg}
	logger, closeLog, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	s.logger = logger
	s.closers = append(s.closers, closeLog)

	debug := strings.EqualFold(cfg.LogLevel, "debug")
	storage, err := kv.Open(cfg.Storage, cfg.DBPath, debug)
	if err != nil {
		s.close()
		return nil, err
	}
	s.storage = storage
	s.closers = append(s.closers, storage.Close)

	filter, err := cfg.Filter()
	if err != nil {
		logger.Warn("ignoring invalid default filter", "error", err)
		filter = models.AllFilter()
	}

	s.store = store.New(storage, store.WithLogger(logger))
	opts := append([]view.Option{view.WithDateLayout(cfg.DateLayout), view.WithFilter(filter)}, viewOpts...)
	s.manager = app.New(s.store, view.New(opts...), notifierFor(cfg), app.WithLogger(logger))

	logger.Debug("session opened", "storage", cfg.Storage, "path", cfg.DBPath, "tasks", len(s.store.All()))
	return s, nil
}

// close releases resources in reverse order
func (s *session) close() {
	if s.manager != nil {
		s.manager.Close()
	}
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && s.logger != nil {
			s.logger.Warn("close failed", "error", err)
		}
	}
}

// withSession wraps a command function to open the session first
func withSession(fn func(*cobra.Command, []string, *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		console := func(config.Config) notify.Notifier { return newConsoleNotifier(cmd) }
		s, err := openSession(settings, console)
		if err != nil {
			return fmt.Errorf("failed to start taskflow: %w", err)
		}
		defer s.close()
		return fn(cmd, args, s)
	}
}
