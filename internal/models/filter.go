package models

import (
	"fmt"
	"strings"
)

// FilterAll matches every value of a filter dimension
const FilterAll = "all"

// Filter narrows a task list by priority and status.
// Both predicates must match; "all" (or empty) matches everything.
type Filter struct {
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

// AllFilter returns the filter that matches every task
func AllFilter() Filter {
	return Filter{Priority: FilterAll, Status: FilterAll}
}

// Matches reports whether a task with the given attributes passes the filter
func (f Filter) Matches(priority Priority, status Status) bool {
	priorityMatch := f.Priority == "" || f.Priority == FilterAll || f.Priority == string(priority)
	statusMatch := f.Status == "" || f.Status == FilterAll || f.Status == string(status)
	return priorityMatch && statusMatch
}

// IsAll reports whether the filter lets everything through
func (f Filter) IsAll() bool {
	return (f.Priority == "" || f.Priority == FilterAll) && (f.Status == "" || f.Status == FilterAll)
}

// ParseFilter validates raw priority/status filter values
func ParseFilter(priority, status string) (Filter, error) {
	priority = strings.ToLower(strings.TrimSpace(priority))
	status = strings.ToLower(strings.TrimSpace(status))
	if priority == "" {
		priority = FilterAll
	}
	if status == "" {
		status = FilterAll
	}
	if priority != FilterAll && !Priority(priority).Valid() {
		return Filter{}, fmt.Errorf("invalid priority filter '%s'. Use: all, high, medium, low", priority)
	}
	if status != FilterAll && !Status(status).Valid() {
		return Filter{}, fmt.Errorf("invalid status filter '%s'. Use: all, pending, completed", status)
	}
	return Filter{Priority: priority, Status: status}, nil
}

// PriorityFilterCycle is the order the UI steps through priority filters
var PriorityFilterCycle = []string{FilterAll, string(PriorityHigh), string(PriorityMedium), string(PriorityLow)}

// StatusFilterCycle is the order the UI steps through status filters
var StatusFilterCycle = []string{FilterAll, string(StatusPending), string(StatusCompleted)}

// NextInCycle returns the value after current in cycle, wrapping around
func NextInCycle(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}
