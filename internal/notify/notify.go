// Package notify keeps short-lived user notifications.
//
// A notification is created, becomes visible immediately, starts
// dismissing once its display time is up and is removed after the
// dismiss transition. State is derived from the clock on every read, so
// the sink needs no timers of its own; a display just polls Active.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Kind selects the notification's styling
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// State is a notification's lifecycle stage
type State int

const (
	StateCreated State = iota
	StateVisible
	StateDismissing
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateVisible:
		return "visible"
	case StateDismissing:
		return "dismissing"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

const (
	// DefaultDisplay is how long a notification stays fully visible
	DefaultDisplay = 3 * time.Second
	// DismissDuration is the length of the exit transition
	DismissDuration = 300 * time.Millisecond
)

// Notification is a single message
type Notification struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
	display   time.Duration
}

// StateAt returns the lifecycle stage at now
func (n Notification) StateAt(now time.Time) State {
	age := now.Sub(n.CreatedAt)
	switch {
	case age < 0:
		return StateCreated
	case age < n.display:
		return StateVisible
	case age < n.display+DismissDuration:
		return StateDismissing
	default:
		return StateRemoved
	}
}

// DismissProgress is 0 until dismissing starts and 1 once removed
func (n Notification) DismissProgress(now time.Time) float64 {
	elapsed := now.Sub(n.CreatedAt) - n.display
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= DismissDuration {
		return 1
	}
	return float64(elapsed) / float64(DismissDuration)
}

// Notifier is what components use to report outcomes to the user
type Notifier interface {
	Notify(message string, kind Kind)
}

// Option configures a Sink
type Option func(*Sink)

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Sink) {
		s.now = now
	}
}

// WithDisplay overrides how long notifications stay visible
func WithDisplay(d time.Duration) Option {
	return func(s *Sink) {
		if d > 0 {
			s.display = d
		}
	}
}

// Sink holds every notification that has not been removed yet.
// There is no deduplication and no limit; identical messages stack.
// A Sink is not safe for concurrent use.
type Sink struct {
	items   []Notification
	now     func() time.Time
	display time.Duration
}

// New creates an empty sink
func New(opts ...Option) *Sink {
	s := &Sink{
		now:     time.Now,
		display: DefaultDisplay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify adds a message
func (s *Sink) Notify(message string, kind Kind) {
	s.Push(message, kind)
}

// Push adds a message and returns the created notification
func (s *Sink) Push(message string, kind Kind) Notification {
	if kind == "" {
		kind = KindInfo
	}
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: s.now(),
		display:   s.display,
	}
	s.items = append(s.items, n)
	return n
}

// Active prunes removed notifications and returns the rest, oldest first
func (s *Sink) Active() []Notification {
	now := s.now()
	kept := s.items[:0]
	for _, n := range s.items {
		if n.StateAt(now) != StateRemoved {
			kept = append(kept, n)
		}
	}
	s.items = kept

	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// Len is the number of notifications not yet pruned
func (s *Sink) Len() int {
	return len(s.items)
}

// Now returns the sink's clock reading
func (s *Sink) Now() time.Time {
	return s.now()
}
