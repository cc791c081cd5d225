// Package app is the boundary between user actions and the task core.
//
// A Manager is built once with the store, the view and a notifier, and is
// the only place where store errors turn into user-visible notifications.
// Display layers call Manager methods and never see raw errors.
package app

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/balkashynov/taskflow/internal/models"
	"github.com/balkashynov/taskflow/internal/notify"
	"github.com/balkashynov/taskflow/internal/store"
	"github.com/balkashynov/taskflow/internal/view"
)

// Prompter asks the user for a new value of a field.
// ok is false when the user cancelled.
type Prompter interface {
	Prompt(field, current string) (value string, ok bool)
}

// PromptFunc adapts a function to Prompter
type PromptFunc func(field, current string) (string, bool)

// Prompt calls f
func (f PromptFunc) Prompt(field, current string) (string, bool) {
	return f(field, current)
}

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides time.Now, used for export file names
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// Manager routes user actions to the store and reports the outcome
type Manager struct {
	store    *store.TaskStore
	view     *view.TaskView
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
	detach   func()
	unlog    func()
}

// New wires the view to the store and returns a ready Manager
func New(s *store.TaskStore, v *view.TaskView, n notify.Notifier, opts ...Option) *Manager {
	m := &Manager{
		store:    s,
		view:     v,
		notifier: n,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.detach = v.Attach(s)
	m.unlog = s.Subscribe(func(ev store.Event) {
		m.logger.Debug("task store changed", "kind", ev.Kind.String(), "task", ev.Task.ID, "total", len(ev.Tasks))
	})
	return m
}

// Close detaches the view and the change logger from the store
func (m *Manager) Close() {
	if m.detach != nil {
		m.detach()
		m.detach = nil
	}
	if m.unlog != nil {
		m.unlog()
		m.unlog = nil
	}
}

// Store returns the underlying store for read access
func (m *Manager) Store() *store.TaskStore {
	return m.store
}

// View returns the attached view
func (m *Manager) View() *view.TaskView {
	return m.view
}

// AddTask creates a task and reports whether it succeeded
func (m *Manager) AddTask(title, description string, priority models.Priority) (models.Task, bool) {
	task, err := m.store.Create(title, description, priority)
	if err != nil {
		if strings.TrimSpace(title) == "" {
			m.notifier.Notify(MsgTitleRequired, notify.KindError)
		} else {
			m.notifier.Notify(MsgInvalidPriority, notify.KindError)
		}
		m.logger.Info("task not created", "error", err)
		return models.Task{}, false
	}
	m.notifier.Notify(MsgTaskAdded, notify.KindSuccess)
	m.checkSaved()
	return task, true
}

// ToggleTask flips a task's status. Unknown ids are ignored.
func (m *Manager) ToggleTask(id int) (models.Task, bool) {
	task, err := m.store.ToggleStatus(id)
	if err != nil {
		m.ignoreNotFound("toggle", id, err)
		return models.Task{}, false
	}
	if task.IsCompleted() {
		m.notifier.Notify(MsgTaskCompleted, notify.KindSuccess)
	} else {
		m.notifier.Notify(MsgTaskPending, notify.KindSuccess)
	}
	m.checkSaved()
	return task, true
}

// DeleteTask removes a task. Unknown ids are ignored.
func (m *Manager) DeleteTask(id int) bool {
	if err := m.store.Delete(id); err != nil {
		m.ignoreNotFound("delete", id, err)
		return false
	}
	m.notifier.Notify(MsgTaskDeleted, notify.KindSuccess)
	m.checkSaved()
	return true
}

// EditTask asks p for a new title and then a new description.
// Cancelling either prompt leaves the task untouched.
func (m *Manager) EditTask(id int, p Prompter) (models.Task, bool) {
	task, ok := m.store.Get(id)
	if !ok {
		m.logger.Debug("edit ignored, task not found", "id", id)
		return models.Task{}, false
	}

	title, ok := p.Prompt("title", task.Title)
	if !ok {
		return task, false
	}
	if strings.TrimSpace(title) == "" {
		m.notifier.Notify(MsgInvalidTitle, notify.KindError)
		return task, false
	}
	description, ok := p.Prompt("description", task.Description)
	if !ok {
		return task, false
	}

	return m.UpdateTask(id, title, description)
}

// UpdateTask overwrites a task's title and description
func (m *Manager) UpdateTask(id int, title, description string) (models.Task, bool) {
	updated, err := m.store.Update(id, title, description)
	switch {
	case errors.Is(err, store.ErrValidation):
		m.notifier.Notify(MsgInvalidTitle, notify.KindError)
		return models.Task{}, false
	case err != nil:
		m.ignoreNotFound("update", id, err)
		return models.Task{}, false
	}
	m.notifier.Notify(MsgTaskUpdated, notify.KindSuccess)
	m.checkSaved()
	return updated, true
}

// CopyTitle hands a task's title to write, typically the system clipboard
func (m *Manager) CopyTitle(id int, write func(string) error) bool {
	task, ok := m.store.Get(id)
	if !ok {
		return false
	}
	if err := write(task.Title); err != nil {
		m.logger.Warn("copy failed", "id", id, "error", err)
		m.notifier.Notify(MsgCopyFailed, notify.KindWarning)
		return false
	}
	m.notifier.Notify(MsgCopied, notify.KindInfo)
	return true
}

// SetFilter narrows the visible tasks
func (m *Manager) SetFilter(f models.Filter) {
	m.view.SetFilter(f)
}

// CycleFilter steps the priority or status filter to its next value
func (m *Manager) CycleFilter(priority bool) models.Filter {
	f := m.view.Filter()
	if f.Priority == "" {
		f.Priority = models.FilterAll
	}
	if f.Status == "" {
		f.Status = models.FilterAll
	}
	if priority {
		f.Priority = models.NextInCycle(models.PriorityFilterCycle, f.Priority)
	} else {
		f.Status = models.NextInCycle(models.StatusFilterCycle, f.Status)
	}
	m.view.SetFilter(f)
	return f
}

// ClearFilters resets both filters and the search query
func (m *Manager) ClearFilters() {
	m.view.ClearFilter()
}

// Search narrows the visible tasks by text
func (m *Manager) Search(query string) {
	m.view.SetQuery(query)
}

func (m *Manager) ignoreNotFound(op string, id int, err error) {
	if errors.Is(err, store.ErrNotFound) {
		m.logger.Debug(op+" ignored, task not found", "id", id)
		return
	}
	m.logger.Error(op+" failed", "id", id, "error", err)
}

// checkSaved warns when the last mutation only lives in memory
func (m *Manager) checkSaved() {
	if err := m.store.LastPersistError(); err != nil {
		m.notifier.Notify(MsgNotSaved, notify.KindWarning)
	}
}
