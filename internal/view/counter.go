package view

import (
	"math"
	"time"
)

const (
	// CountUpDuration is how long a counter takes to reach its new value
	CountUpDuration = 500 * time.Millisecond
	// CountUpSteps is the number of discrete jumps per animation
	CountUpSteps = 20
)

// CountUp animates an integer from its shown value to a target in fixed steps
type CountUp struct {
	from   int
	to     int
	step   int
	moving bool
	Value  int
}

// StepInterval is the delay between two ticks
func StepInterval() time.Duration {
	return CountUpDuration / CountUpSteps
}

// Retarget starts a new animation from the currently shown value
func (c *CountUp) Retarget(to int) {
	c.from = c.Value
	c.to = to
	c.step = 0
	c.moving = c.from != c.to
}

// Tick advances one step and reports whether more steps remain.
// The last step always lands exactly on the target.
func (c *CountUp) Tick() bool {
	if !c.moving {
		c.Value = c.to
		return false
	}
	c.step++
	if c.step >= CountUpSteps {
		c.Value = c.to
		c.moving = false
		return false
	}
	delta := float64(c.to-c.from) * float64(c.step) / CountUpSteps
	c.Value = c.from + int(math.Round(delta))
	return true
}

// Done reports whether the counter shows its target
func (c *CountUp) Done() bool {
	return !c.moving
}

// Target is the value the counter is heading to
func (c *CountUp) Target() int {
	return c.to
}

// Summary holds the three header counters
type Summary struct {
	Total     CountUp
	Pending   CountUp
	Completed CountUp
}

// Retarget points all counters at new totals
func (s *Summary) Retarget(total, pending, completed int) {
	s.Total.Retarget(total)
	s.Pending.Retarget(pending)
	s.Completed.Retarget(completed)
}

// Tick advances every counter and reports whether any is still moving
func (s *Summary) Tick() bool {
	a := s.Total.Tick()
	b := s.Pending.Tick()
	c := s.Completed.Tick()
	return a || b || c
}

// Settle jumps every counter to its target
func (s *Summary) Settle() {
	for _, c := range []*CountUp{&s.Total, &s.Pending, &s.Completed} {
		c.moving = false
		c.Value = c.to
	}
}
