package usecase

import (
	"context"
	"fmt"

	"github.com/deskhub/deskhub/internal/domain"
)

// ListTasksInput contains the filter parameters for listing tasks.
// At most one filter applies; Status wins over AssigneeID over ClientID.
// With no filter set, all tasks are returned.
type ListTasksInput struct {
	Status     domain.Status // Filter by status (optional)
	AssigneeID string        // Filter by assignee id (optional)
	ClientID   string        // Filter by requester id (optional)
}

// ListTasksOutput contains the matching tasks in creation order.
type ListTasksOutput struct {
	Tasks []domain.Task
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store domain.TaskStore
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store domain.TaskStore) *ListTasks {
	return &ListTasks{store: store}
}

// Execute returns the tasks matching the filter.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	switch {
	case in.Status != "":
		if !in.Status.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
		}
		return &ListTasksOutput{Tasks: uc.store.GetTasksByStatus(in.Status)}, nil
	case in.AssigneeID != "":
		return &ListTasksOutput{Tasks: uc.store.GetTasksByAssignee(in.AssigneeID)}, nil
	case in.ClientID != "":
		return &ListTasksOutput{Tasks: uc.store.GetTasksByClient(in.ClientID)}, nil
	default:
		return &ListTasksOutput{Tasks: uc.store.Tasks()}, nil
	}
}
