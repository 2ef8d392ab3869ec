package usecase

import (
	"context"
	"fmt"

	"github.com/deskhub/deskhub/internal/domain"
)

// ImportTasksInput contains the parameters for bulk task intake.
type ImportTasksInput struct {
	Content []byte          // YAML list of task drafts
	Actor   domain.Identity // Who files the tasks
	DryRun  bool            // If true, parse and validate without creating tasks
}

// ImportTasksOutput contains the created (or validated) tasks.
type ImportTasksOutput struct {
	Tasks []domain.Task
}

// ImportTasks is the use case for filing tasks in bulk from a YAML file.
type ImportTasks struct {
	store  domain.TaskStore
	logger domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(store domain.TaskStore, logger domain.Logger) *ImportTasks {
	return &ImportTasks{store: store, logger: logger}
}

// Execute parses the drafts and files one task per draft. Drafts are
// validated up front; a draft without a client falls back to the actor.
// In dry-run mode the parsed drafts are returned as unsaved tasks.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	drafts, err := domain.ParseTaskDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	for i := range drafts {
		if drafts[i].ClientID == "" {
			drafts[i].ClientID = in.Actor.ID
			drafts[i].ClientName = in.Actor.Name
		}
		if err := drafts[i].Validate(); err != nil {
			return nil, fmt.Errorf("draft %d: %w", i+1, err)
		}
	}

	out := &ImportTasksOutput{Tasks: make([]domain.Task, 0, len(drafts))}

	if in.DryRun {
		for _, d := range drafts {
			out.Tasks = append(out.Tasks, domain.Task{
				Title:       d.Title,
				Description: d.Description,
				Status:      domain.StatusPending,
				Priority:    d.Priority,
				ClientID:    d.ClientID,
				ClientName:  d.ClientName,
				DueDate:     d.DueDate,
			})
		}
		return out, nil
	}

	for i, d := range drafts {
		task, err := uc.store.Create(d, in.Actor)
		if err != nil {
			return nil, fmt.Errorf("draft %d: create task: %w", i+1, err)
		}
		if uc.logger != nil {
			uc.logger.Info(task.ID, "task", fmt.Sprintf("imported: %q", task.Title))
		}
		out.Tasks = append(out.Tasks, *task)
	}

	return out, nil
}
