package usecase

import (
	"context"
	"fmt"

	"github.com/deskhub/deskhub/internal/domain"
)

// UpdateTaskInput contains the parameters for editing a task.
// Nil pointers mean "no change".
type UpdateTaskInput struct {
	Changes domain.TaskUpdate // Field replacements to apply
	TaskID  string            // Target task id (required)
	Actor   domain.Identity   // Who performs the edit
}

// UpdateTaskOutput contains the result of editing a task.
type UpdateTaskOutput struct {
	Task domain.Task // The task after the edit
}

// UpdateTask is the use case for partially editing a task.
type UpdateTask struct {
	store  domain.TaskStore
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(store domain.TaskStore, logger domain.Logger) *UpdateTask {
	return &UpdateTask{store: store, logger: logger}
}

// Execute applies the update to the task.
func (uc *UpdateTask) Execute(_ context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if in.Changes.IsZero() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Changes.Title != nil && *in.Changes.Title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.Changes.Status != nil && !in.Changes.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, *in.Changes.Status)
	}
	if in.Changes.Priority != nil && !in.Changes.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, *in.Changes.Priority)
	}

	task, err := uc.store.Patch(in.TaskID, in.Changes, in.Actor)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("edited by %s", in.Actor.Name))
	}

	return &UpdateTaskOutput{Task: *task}, nil
}
