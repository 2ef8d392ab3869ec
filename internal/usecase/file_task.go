// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/deskhub/deskhub/internal/domain"
)

// FileTaskInput contains the parameters for filing a new task.
type FileTaskInput struct {
	DueDate     *time.Time      // Due date (optional)
	Title       string          // Task title (required)
	Description string          // Task description (optional)
	Priority    domain.Priority // Priority (empty = medium)
	ClientID    string          // Requester id (empty = the actor)
	ClientName  string          // Requester name (empty = the actor)
	Actor       domain.Identity // Who is filing the task
}

// FileTaskOutput contains the result of filing a task.
type FileTaskOutput struct {
	Task domain.Task // The created task
}

// FileTask is the use case for filing a new task.
type FileTask struct {
	store  domain.TaskStore
	logger domain.Logger
}

// NewFileTask creates a new FileTask use case.
func NewFileTask(store domain.TaskStore, logger domain.Logger) *FileTask {
	return &FileTask{store: store, logger: logger}
}

// Execute files a new task with the given input.
func (uc *FileTask) Execute(_ context.Context, in FileTaskInput) (*FileTaskOutput, error) {
	draft := domain.TaskDraft{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		ClientID:    in.ClientID,
		ClientName:  in.ClientName,
		DueDate:     in.DueDate,
	}

	// A client filing for themselves is the common case.
	if draft.ClientID == "" {
		draft.ClientID = in.Actor.ID
		draft.ClientName = in.Actor.Name
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	task, err := uc.store.Create(draft, in.Actor)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("filed: %q", task.Title))
	}

	return &FileTaskOutput{Task: *task}, nil
}
