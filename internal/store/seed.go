package store

import (
	"time"

	"github.com/deskhub/deskhub/internal/domain"
)

// SeedTasks returns the built-in example tasks installed on first run,
// when no persisted task collection exists yet. No history is
// synthesized for them. Returned as fresh copies so callers cannot
// mutate the bootstrap set.
func SeedTasks() []domain.Task {
	due1 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	return []domain.Task{
		{
			ID:            "1",
			Title:         "Setup new workstation",
			Description:   "Need to setup a new workstation for the marketing department",
			Status:        domain.StatusPending,
			Priority:      domain.PriorityHigh,
			ClientID:      "3",
			ClientName:    "Mike Client",
			CreatedByID:   "3",
			CreatedByName: "Mike Client",
			CreatedAt:     time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			UpdatedAt:     time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			DueDate:       &due1,
		},
		{
			ID:             "2",
			Title:          "Network connectivity issues",
			Description:    "Internet connection dropping frequently in conference room B",
			Status:         domain.StatusInProgress,
			Priority:       domain.PriorityUrgent,
			ClientID:       "3",
			ClientName:     "Mike Client",
			AssignedToID:   "2",
			AssignedToName: "Sarah Employee",
			CreatedByID:    "3",
			CreatedByName:  "Mike Client",
			CreatedAt:      time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
			UpdatedAt:      time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			DueDate:        &due2,
		},
	}
}
