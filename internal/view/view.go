// Package view projects the task store onto a display surface.
//
// Rendering is total: every store change discards all elements and rebuilds
// them from the full task list. Filtering and search never query the store;
// they toggle visibility on the elements already rendered, using the
// priority and status recorded on each element.
package view

import (
	"strings"
	"time"

	"github.com/balkashynov/taskflow/internal/models"
	"github.com/balkashynov/taskflow/internal/store"
)

// Element is one rendered task
type Element struct {
	ID            int
	Title         string
	Description   string
	Priority      models.Priority
	Status        models.Status
	PriorityLabel string
	PriorityTone  Tone
	StatusLabel   string
	StatusTone    Tone
	DateLabel     string
	Checked       bool
	Visible       bool
}

// Animator receives lifecycle hooks so a display can animate changes.
// TaskRemoving is called after the task is already gone from the store;
// the animator calls done once the exit effect has finished.
type Animator interface {
	TaskAdded(id int)
	TaskToggled(id int, completed bool)
	TaskRemoving(task models.Task, done func())
	FilterChanged(visible, hidden []int)
}

// NopAnimator ignores every hook and completes removals immediately
type NopAnimator struct{}

func (NopAnimator) TaskAdded(int) {}

func (NopAnimator) TaskToggled(int, bool) {}

func (NopAnimator) TaskRemoving(_ models.Task, done func()) { done() }

func (NopAnimator) FilterChanged(_, _ []int) {}

// Option configures a TaskView
type Option func(*TaskView)

// WithAnimator installs the animation collaborator
func WithAnimator(a Animator) Option {
	return func(v *TaskView) {
		v.animator = a
	}
}

// WithClock overrides time.Now for relative dates
func WithClock(now func() time.Time) Option {
	return func(v *TaskView) {
		v.now = now
	}
}

// WithDateLayout sets the layout for dates older than a week
func WithDateLayout(layout string) Option {
	return func(v *TaskView) {
		if layout != "" {
			v.dateLayout = layout
		}
	}
}

// WithFilter sets the initial filter
func WithFilter(f models.Filter) Option {
	return func(v *TaskView) {
		v.filter = f
	}
}

// TaskView is a pure reader of store state
type TaskView struct {
	elements   []Element
	filter     models.Filter
	query      string
	animator   Animator
	now        func() time.Time
	dateLayout string
	summary    Summary
	onChange   []func()
}

// New creates an empty view
func New(opts ...Option) *TaskView {
	v := &TaskView{
		filter:     models.AllFilter(),
		animator:   NopAnimator{},
		now:        time.Now,
		dateLayout: DefaultDateLayout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Attach renders the store's current list and subscribes to its changes.
// The returned function detaches the view.
func (v *TaskView) Attach(s *store.TaskStore) func() {
	v.Render(s.All())
	v.summary.Settle()
	return s.Subscribe(v.handleEvent)
}

// OnChange registers a callback fired after every render or visibility change
func (v *TaskView) OnChange(fn func()) {
	v.onChange = append(v.onChange, fn)
}

func (v *TaskView) handleEvent(ev store.Event) {
	v.Render(ev.Tasks)

	switch ev.Kind {
	case store.EventAdded:
		v.animator.TaskAdded(ev.Task.ID)
	case store.EventToggled:
		v.animator.TaskToggled(ev.Task.ID, ev.Task.IsCompleted())
	case store.EventRemoved:
		v.animator.TaskRemoving(ev.Task, func() {})
	}
}

// Render rebuilds every element from tasks and reapplies the active filter
func (v *TaskView) Render(tasks []models.Task) {
	now := v.now()
	elements := make([]Element, 0, len(tasks))
	completed := 0
	for _, t := range tasks {
		elements = append(elements, v.element(t, now))
		if t.IsCompleted() {
			completed++
		}
	}
	v.elements = elements
	v.summary.Retarget(len(tasks), len(tasks)-completed, completed)
	v.applyVisibility(false)
}

func (v *TaskView) element(t models.Task, now time.Time) Element {
	priorityLabel, priorityTone := PriorityLabel(t.Priority)
	statusLabel, statusTone := StatusLabel(t.Status)
	return Element{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Priority:      t.Priority,
		Status:        t.Status,
		PriorityLabel: priorityLabel,
		PriorityTone:  priorityTone,
		StatusLabel:   statusLabel,
		StatusTone:    statusTone,
		DateLabel:     FormatRelativeDate(t.CreatedAt, now, v.dateLayout),
		Checked:       t.IsCompleted(),
	}
}

// SetFilter changes the active filter and toggles element visibility
func (v *TaskView) SetFilter(f models.Filter) {
	v.filter = f
	v.applyVisibility(true)
}

// Filter returns the active filter
func (v *TaskView) Filter() models.Filter {
	return v.filter
}

// ClearFilter resets both predicates to "all" and drops the search query
func (v *TaskView) ClearFilter() {
	v.filter = models.AllFilter()
	v.query = ""
	v.applyVisibility(true)
}

// SetQuery narrows visible elements to those whose title or description
// contains query, ignoring case
func (v *TaskView) SetQuery(query string) {
	v.query = strings.ToLower(strings.TrimSpace(query))
	v.applyVisibility(true)
}

// Query returns the active search query
func (v *TaskView) Query() string {
	return v.query
}

func (v *TaskView) applyVisibility(notify bool) {
	var visible, hidden []int
	for i := range v.elements {
		el := &v.elements[i]
		el.Visible = v.filter.Matches(el.Priority, el.Status) && v.matchesQuery(el)
		if el.Visible {
			visible = append(visible, el.ID)
		} else {
			hidden = append(hidden, el.ID)
		}
	}
	if notify {
		v.animator.FilterChanged(visible, hidden)
	}
	for _, fn := range v.onChange {
		fn()
	}
}

func (v *TaskView) matchesQuery(el *Element) bool {
	if v.query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(el.Title), v.query) ||
		strings.Contains(strings.ToLower(el.Description), v.query)
}

// Elements returns all rendered elements, hidden ones included
func (v *TaskView) Elements() []Element {
	out := make([]Element, len(v.elements))
	copy(out, v.elements)
	return out
}

// Visible returns the elements currently shown
func (v *TaskView) Visible() []Element {
	out := []Element{}
	for _, el := range v.elements {
		if el.Visible {
			out = append(out, el)
		}
	}
	return out
}

// Empty reports whether there are no tasks at all
func (v *TaskView) Empty() bool {
	return len(v.elements) == 0
}

// Summary exposes the animated header counters
func (v *TaskView) Summary() *Summary {
	return &v.summary
}
