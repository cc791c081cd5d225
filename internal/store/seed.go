package store

import (
	"time"

	"github.com/balkashynov/taskflow/internal/models"
)

// seedTasks returns the demo tasks used to populate an empty store
func seedTasks(now time.Time) []models.Task {
	completedAt := now
	return []models.Task{
		{
			ID:          1,
			Title:       "Design the main interface",
			Description: "Finish the main page design and include all the core elements.",
			Priority:    models.PriorityHigh,
			Status:      models.StatusPending,
			CreatedAt:   now,
		},
		{
			ID:          2,
			Title:       "Build the backend",
			Description: "Implement the APIs needed to manage tasks and store data.",
			Priority:    models.PriorityMedium,
			Status:      models.StatusPending,
			CreatedAt:   now,
		},
		{
			ID:          3,
			Title:       "Test the application",
			Description: "Run thorough tests of every feature and make sure nothing is broken.",
			Priority:    models.PriorityLow,
			Status:      models.StatusCompleted,
			CreatedAt:   now,
			CompletedAt: &completedAt,
		},
	}
}
