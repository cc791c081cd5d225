package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/balkashynov/taskflow/internal/models"
)

// snapshotRecord mirrors models.Task with pointers so missing fields are detectable
type snapshotRecord struct {
	ID          *int            `json:"id"`
	Title       *string         `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
	CreatedAt   *time.Time      `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt"`
}

// decodeSnapshot parses and validates an exported task list.
// Every record must be complete; the first bad record rejects the whole payload.
func decodeSnapshot(data []byte) ([]models.Task, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: expected a list of tasks: %v", ErrFormat, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected a list of tasks", ErrFormat)
	}

	tasks := make([]models.Task, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for i, msg := range raw {
		var rec snapshotRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrFormat, i, err)
		}
		task, err := rec.toTask()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrFormat, i, err)
		}
		if seen[task.ID] {
			return nil, fmt.Errorf("%w: record %d: duplicate id %d", ErrFormat, i, task.ID)
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (r snapshotRecord) toTask() (models.Task, error) {
	if r.ID == nil || *r.ID <= 0 {
		return models.Task{}, fmt.Errorf("id must be a positive integer")
	}
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return models.Task{}, fmt.Errorf("title is empty")
	}
	if !r.Priority.Valid() {
		return models.Task{}, fmt.Errorf("unknown priority %q", r.Priority)
	}
	if !r.Status.Valid() {
		return models.Task{}, fmt.Errorf("unknown status %q", r.Status)
	}
	if r.CreatedAt == nil {
		return models.Task{}, fmt.Errorf("createdAt is missing")
	}

	task := models.Task{
		ID:          *r.ID,
		Title:       strings.TrimSpace(*r.Title),
		Description: strings.TrimSpace(r.Description),
		Priority:    r.Priority,
		Status:      r.Status,
		CreatedAt:   *r.CreatedAt,
	}
	if r.Status == models.StatusCompleted {
		task.CompletedAt = r.CompletedAt
	}
	return task, nil
}
