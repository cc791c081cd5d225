package models

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of a task
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status is the completion state of a task
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task represents a todo item
type Task struct {
	ID          int        `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Status      Status     `json:"status" yaml:"status"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt" yaml:"completedAt"`
}

// IsCompleted reports whether the task is done
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// Valid reports whether p is one of the fixed priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Valid reports whether s is one of the fixed statuses
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// ParsePriority converts user input to a Priority.
// Accepts low/medium/high, med, or 1/2/3. Empty input yields the default.
func ParsePriority(input string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return PriorityMedium, nil
	case "low", "1":
		return PriorityLow, nil
	case "medium", "med", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority '%s'. Use: low, medium, high, 1, 2, or 3", input)
	}
}
