package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task to be filed, before the store assigns
// id, status and timestamps. The requester identity is carried
// denormalized, matching the stored form.
type TaskDraft struct {
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Priority    Priority   `yaml:"priority"`
	ClientID    string     `yaml:"clientId"`
	ClientName  string     `yaml:"clientName"`
	DueDate     *time.Time `yaml:"dueDate"`
}

// Validate checks the draft for required fields and known enum values.
func (d *TaskDraft) Validate() error {
	if d.Title == "" {
		return ErrEmptyTitle
	}
	if d.ClientID == "" || d.ClientName == "" {
		return ErrMissingClient
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !d.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}
	return nil
}

// ParseTaskDrafts parses a YAML document containing a list of task
// drafts, as accepted by 'deskhub new --from file.yaml':
//
//	- title: Replace projector cable
//	  priority: high
//	  clientId: c1
//	  clientName: Mike Client
//	  dueDate: 2025-02-01T00:00:00Z
//	- title: Password reset for new hire
//	  clientId: c2
//	  clientName: Dana Ops
func ParseTaskDrafts(content []byte) ([]TaskDraft, error) {
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}

	var drafts []TaskDraft
	if err := yaml.Unmarshal(content, &drafts); err != nil {
		return nil, fmt.Errorf("parse drafts: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrNoDraftsInFile
	}
	return drafts, nil
}
