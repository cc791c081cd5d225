package view

import (
	"fmt"
	"math"
	"time"

	"github.com/balkashynov/taskflow/internal/models"
)

// Tone is a display-neutral colour role; the render sink picks real colours
type Tone string

const (
	ToneDanger  Tone = "danger"
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
)

// DefaultDateLayout is used for dates older than a week
const DefaultDateLayout = "02/01/2006"

var priorityLabels = map[models.Priority]string{
	models.PriorityHigh:   "High",
	models.PriorityMedium: "Medium",
	models.PriorityLow:    "Low",
}

var priorityTones = map[models.Priority]Tone{
	models.PriorityHigh:   ToneDanger,
	models.PriorityMedium: ToneWarning,
	models.PriorityLow:    ToneSuccess,
}

var statusLabels = map[models.Status]string{
	models.StatusPending:   "Pending",
	models.StatusCompleted: "Completed",
}

var statusTones = map[models.Status]Tone{
	models.StatusPending:   ToneWarning,
	models.StatusCompleted: ToneSuccess,
}

// PriorityLabel returns the display label and tone for a priority
func PriorityLabel(p models.Priority) (string, Tone) {
	label, ok := priorityLabels[p]
	if !ok {
		return string(p), ToneInfo
	}
	return label, priorityTones[p]
}

// StatusLabel returns the display label and tone for a status
func StatusLabel(s models.Status) (string, Tone) {
	label, ok := statusLabels[s]
	if !ok {
		return string(s), ToneInfo
	}
	return label, statusTones[s]
}

// FormatRelativeDate describes when a task was created.
// The day difference is rounded up, so anything within the last 24 hours is
// "Today", up to 48 hours is "Yesterday", up to a week is "N days ago", and
// older dates are printed with layout.
func FormatRelativeDate(created, now time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}
	diff := now.Sub(created)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days <= 1:
		return "Today"
	case days == 2:
		return "Yesterday"
	case days <= 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return created.In(now.Location()).Format(layout)
	}
}
