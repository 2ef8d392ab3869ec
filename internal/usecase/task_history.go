package usecase

import (
	"context"

	"github.com/deskhub/deskhub/internal/domain"
)

// TaskHistoryInput contains the parameters for reading task history.
// With an empty TaskID the full audit log is returned.
type TaskHistoryInput struct {
	TaskID string // Target task id (optional)
}

// TaskHistoryOutput contains history entries in append order.
type TaskHistoryOutput struct {
	Entries []domain.TaskHistory
}

// TaskHistory is the use case for reading the audit log.
// It works for deleted tasks too; history outlives the task.
type TaskHistory struct {
	store domain.TaskStore
}

// NewTaskHistory creates a new TaskHistory use case.
func NewTaskHistory(store domain.TaskStore) *TaskHistory {
	return &TaskHistory{store: store}
}

// Execute returns the history entries.
func (uc *TaskHistory) Execute(_ context.Context, in TaskHistoryInput) (*TaskHistoryOutput, error) {
	if in.TaskID == "" {
		return &TaskHistoryOutput{Entries: uc.store.History()}, nil
	}
	return &TaskHistoryOutput{Entries: uc.store.GetTaskHistory(in.TaskID)}, nil
}
