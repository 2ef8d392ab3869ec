package usecase

import (
	"context"
	"fmt"

	"github.com/deskhub/deskhub/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string          // Target task id (required)
	Actor  domain.Identity // Who performs the deletion
}

// DeleteTask is the use case for deleting a task.
// The task's history entries are retained.
type DeleteTask struct {
	store  domain.TaskStore
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store domain.TaskStore, logger domain.Logger) *DeleteTask {
	return &DeleteTask{store: store, logger: logger}
}

// Execute deletes the task.
func (uc *DeleteTask) Execute(_ context.Context, in DeleteTaskInput) error {
	if err := uc.store.Delete(in.TaskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(in.TaskID, "task", fmt.Sprintf("deleted by %s", in.Actor.Name))
	}
	return nil
}
