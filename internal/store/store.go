// Package store owns the authoritative task list and its persistence.
//
// A TaskStore is built once at startup, hydrated from local key-value storage
// and handed to the components that need it. Every mutation writes the full
// list and the id counter back to storage before listeners are notified.
// A TaskStore is not safe for concurrent use.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/balkashynov/taskflow/internal/kv"
	"github.com/balkashynov/taskflow/internal/models"
)

// Keys the store persists under
const (
	KeyTasks   = "tasks"
	KeyCounter = "counter"
)

// EventKind identifies what changed in the store
type EventKind int

const (
	EventAdded EventKind = iota
	EventToggled
	EventUpdated
	EventRemoved
	EventReplaced
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventToggled:
		return "toggled"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	case EventReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after every persisted mutation
type Event struct {
	Kind  EventKind
	Task  models.Task   // affected task, zero for EventReplaced
	Tasks []models.Task // full list after the mutation
}

// Listener receives store events
type Listener func(Event)

// Stats summarises the task list
type Stats struct {
	Total     int
	Pending   int
	Completed int
}

// Option configures a TaskStore
type Option func(*TaskStore)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// WithLogger sets the logger used for storage failures
func WithLogger(logger *slog.Logger) Option {
	return func(s *TaskStore) {
		s.logger = logger
	}
}

// TaskStore is the single writer of the task list
type TaskStore struct {
	storage   kv.Storage
	tasks     []models.Task
	nextID    int
	listeners []Listener
	now       func() time.Time
	logger    *slog.Logger
	lastErr   error
}

// New creates a store and hydrates it from storage.
// Missing, unreadable or invalid state falls back to the seed tasks.
func New(storage kv.Storage, opts ...Option) *TaskStore {
	s := &TaskStore{
		storage: storage,
		tasks:   []models.Task{},
		nextID:  1,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// load reads both keys; read failures are treated as empty storage.
// Seeding only happens when there is no valid task list at all, so a
// deliberately emptied list stays empty.
func (s *TaskStore) load() {
	tasks, found := s.loadTasks()
	counter := s.loadCounter()

	seeded := false
	if !found {
		tasks = seedTasks(s.now())
		seeded = true
	}

	s.tasks = tasks
	s.nextID = counter
	if floor := maxID(tasks) + 1; s.nextID < floor {
		s.nextID = floor
	}

	if seeded {
		s.logger.Info("seeded empty task store", "tasks", len(tasks))
		s.persist()
	}
}

func (s *TaskStore) loadTasks() ([]models.Task, bool) {
	raw, ok, err := s.storage.Get(KeyTasks)
	if err != nil {
		s.logger.Warn("failed to read tasks, starting empty", "error", &StorageError{Op: "read", Key: KeyTasks, Err: err})
		return nil, false
	}
	if !ok {
		return nil, false
	}
	tasks, err := decodeSnapshot([]byte(raw))
	if err != nil {
		s.logger.Warn("stored tasks are invalid, starting from seed", "error", err)
		return nil, false
	}
	return tasks, true
}

func (s *TaskStore) loadCounter() int {
	raw, ok, err := s.storage.Get(KeyCounter)
	if err != nil {
		s.logger.Warn("failed to read counter", "error", &StorageError{Op: "read", Key: KeyCounter, Err: err})
		return 1
	}
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// persist writes the full list and the counter.
// Failures are logged and remembered; the in-memory mutation stands.
func (s *TaskStore) persist() {
	s.lastErr = nil

	data, err := json.Marshal(s.tasks)
	if err != nil {
		s.recordWriteError(KeyTasks, err)
		return
	}
	if err := s.storage.Set(KeyTasks, string(data)); err != nil {
		s.recordWriteError(KeyTasks, err)
		return
	}
	if err := s.storage.Set(KeyCounter, strconv.Itoa(s.nextID)); err != nil {
		s.recordWriteError(KeyCounter, err)
	}
}

func (s *TaskStore) recordWriteError(key string, err error) {
	s.lastErr = &StorageError{Op: "write", Key: key, Err: err}
	s.logger.Error("failed to persist tasks, continuing in memory", "error", s.lastErr)
}

// LastPersistError returns the error from the most recent write, if any
func (s *TaskStore) LastPersistError() error {
	return s.lastErr
}

// Subscribe registers a listener and returns a function that removes it
func (s *TaskStore) Subscribe(l Listener) func() {
	s.listeners = append(s.listeners, l)
	idx := len(s.listeners) - 1
	return func() {
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

func (s *TaskStore) emit(kind EventKind, task models.Task) {
	ev := Event{Kind: kind, Task: task, Tasks: s.All()}
	for _, l := range s.listeners {
		if l != nil {
			l(ev)
		}
	}
}

// commit persists and notifies listeners
func (s *TaskStore) commit(kind EventKind, task models.Task) {
	s.persist()
	s.emit(kind, task)
}

// Create appends a new pending task.
// An empty priority defaults to medium.
func (s *TaskStore) Create(title, description string, priority models.Priority) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrValidation
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return models.Task{}, fmt.Errorf("%w: unknown priority %q", ErrValidation, priority)
	}

	task := models.Task{
		ID:          s.nextID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Status:      models.StatusPending,
		CreatedAt:   s.now(),
	}
	s.nextID++
	s.tasks = append(s.tasks, task)

	s.commit(EventAdded, task)
	return task, nil
}

// ToggleStatus flips a task between pending and completed
func (s *TaskStore) ToggleStatus(id int) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: #%d", ErrNotFound, id)
	}

	task := &s.tasks[i]
	if task.IsCompleted() {
		task.Status = models.StatusPending
		task.CompletedAt = nil
	} else {
		now := s.now()
		task.Status = models.StatusCompleted
		task.CompletedAt = &now
	}

	toggled := *task
	s.commit(EventToggled, toggled)
	return toggled, nil
}

// Delete removes a task immediately.
// Any visual exit delay is the display's concern.
func (s *TaskStore) Delete(id int) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: #%d", ErrNotFound, id)
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	s.commit(EventRemoved, removed)
	return nil
}

// Update overwrites a task's title and description
func (s *TaskStore) Update(id int, title, description string) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, ErrValidation
	}
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, fmt.Errorf("%w: #%d", ErrNotFound, id)
	}

	s.tasks[i].Title = title
	s.tasks[i].Description = strings.TrimSpace(description)

	updated := s.tasks[i]
	s.commit(EventUpdated, updated)
	return updated, nil
}

// Get returns the task with id
func (s *TaskStore) Get(id int) (models.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// All returns a copy of every task in insertion order
func (s *TaskStore) All() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// List returns the tasks matching both filter predicates, in insertion order
func (s *TaskStore) List(filter models.Filter) []models.Task {
	out := []models.Task{}
	for _, t := range s.tasks {
		if filter.Matches(t.Priority, t.Status) {
			out = append(out, t)
		}
	}
	return out
}

// Search returns tasks whose title or description contains query, ignoring case
func (s *TaskStore) Search(query string) []models.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Task{}
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}

// Stats counts tasks by status
func (s *TaskStore) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.IsCompleted() {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// NextID returns the id the next created task will receive
func (s *TaskStore) NextID() int {
	return s.nextID
}

// ExportSnapshot serializes the full task list in the persisted format
func (s *TaskStore) ExportSnapshot() ([]byte, error) {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tasks: %w", err)
	}
	return data, nil
}

// ImportSnapshot replaces the whole list with a previously exported one.
// On ErrFormat the store is left unchanged.
func (s *TaskStore) ImportSnapshot(data []byte) error {
	tasks, err := decodeSnapshot(data)
	if err != nil {
		return err
	}

	s.tasks = tasks
	s.nextID = maxID(tasks) + 1

	s.commit(EventReplaced, models.Task{})
	return nil
}

func (s *TaskStore) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func maxID(tasks []models.Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
