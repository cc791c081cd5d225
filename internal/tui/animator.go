package tui

import (
	"time"

	"github.com/balkashynov/taskflow/internal/models"
	"github.com/balkashynov/taskflow/internal/view"
)

var _ view.Animator = (*Animator)(nil)

const (
	// HighlightDuration is how long a new task's row shimmers
	HighlightDuration = 1200 * time.Millisecond
	// FlashDuration is how long a toggled row stays emphasised
	FlashDuration = 400 * time.Millisecond
	// RemoveGrace is how long a deleted task lingers as a ghost row
	RemoveGrace = 300 * time.Millisecond
	// FadeDuration is how long rows revealed by a filter change stay faint
	FadeDuration = 200 * time.Millisecond
)

// Ghost is a deleted task still on screen
type Ghost struct {
	Task  models.Task
	Index int
	until time.Time
	done  func()
}

// Animator turns view lifecycle hooks into timed display effects.
// The store has already changed when a hook fires; everything here is
// cosmetic and expires on its own as Advance is called.
type Animator struct {
	now        func() time.Time
	highlights map[int]time.Time
	flashes    map[int]time.Time
	fading     map[int]time.Time
	ghosts     []Ghost
	nextIndex  int
}

// NewAnimator creates an animator reading time from now
func NewAnimator(now func() time.Time) *Animator {
	if now == nil {
		now = time.Now
	}
	return &Animator{
		now:        now,
		highlights: map[int]time.Time{},
		flashes:    map[int]time.Time{},
		fading:     map[int]time.Time{},
		nextIndex:  -1,
	}
}

// PlaceNextRemoval records the row index of the task about to be deleted so
// its ghost is drawn where the row was
func (a *Animator) PlaceNextRemoval(index int) {
	a.nextIndex = index
}

func (a *Animator) TaskAdded(id int) {
	a.highlights[id] = a.now().Add(HighlightDuration)
}

func (a *Animator) TaskToggled(id int, _ bool) {
	a.flashes[id] = a.now().Add(FlashDuration)
}

func (a *Animator) TaskRemoving(task models.Task, done func()) {
	delete(a.highlights, task.ID)
	delete(a.flashes, task.ID)
	delete(a.fading, task.ID)
	a.ghosts = append(a.ghosts, Ghost{
		Task:  task,
		Index: a.nextIndex,
		until: a.now().Add(RemoveGrace),
		done:  done,
	})
	a.nextIndex = -1
}

func (a *Animator) FilterChanged(visible, hidden []int) {
	until := a.now().Add(FadeDuration)
	for _, id := range visible {
		a.fading[id] = until
	}
	for _, id := range hidden {
		delete(a.fading, id)
	}
}

// Advance expires finished effects, completing ghost removals, and reports
// whether anything is still animating
func (a *Animator) Advance() bool {
	now := a.now()
	expire(a.highlights, now)
	expire(a.flashes, now)
	expire(a.fading, now)

	kept := a.ghosts[:0]
	for _, g := range a.ghosts {
		if now.Before(g.until) {
			kept = append(kept, g)
			continue
		}
		if g.done != nil {
			g.done()
		}
	}
	a.ghosts = kept

	return a.Busy()
}

// Busy reports whether any effect is pending
func (a *Animator) Busy() bool {
	return len(a.highlights) > 0 || len(a.flashes) > 0 || len(a.fading) > 0 || len(a.ghosts) > 0
}

// Highlighted reports whether id was added recently
func (a *Animator) Highlighted(id int) bool {
	_, ok := a.highlights[id]
	return ok
}

// Flashing reports whether id was toggled recently
func (a *Animator) Flashing(id int) bool {
	_, ok := a.flashes[id]
	return ok
}

// Fading reports whether id was just revealed by a filter change
func (a *Animator) Fading(id int) bool {
	_, ok := a.fading[id]
	return ok
}

// Ghosts returns the rows still in their removal grace window
func (a *Animator) Ghosts() []Ghost {
	out := make([]Ghost, len(a.ghosts))
	copy(out, a.ghosts)
	return out
}

func expire(m map[int]time.Time, now time.Time) {
	for id, until := range m {
		if !now.Before(until) {
			delete(m, id)
		}
	}
}
