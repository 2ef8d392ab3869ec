package usecase

import (
	"context"
	"fmt"

	"github.com/deskhub/deskhub/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID string // Target task id (required)
}

// ShowTaskOutput contains a task together with its audit history.
type ShowTaskOutput struct {
	Task    domain.Task          // The task
	History []domain.TaskHistory // Its history entries, oldest first
}

// ShowTask is the use case for displaying one task with its history.
type ShowTask struct {
	store domain.TaskStore
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(store domain.TaskStore) *ShowTask {
	return &ShowTask{store: store}
}

// Execute returns the task and its history.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := uc.store.GetTaskByID(in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	return &ShowTaskOutput{
		Task:    *task,
		History: uc.store.GetTaskHistory(in.TaskID),
	}, nil
}
