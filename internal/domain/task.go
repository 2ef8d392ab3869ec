// Package domain contains core business entities and interfaces.
package domain

import "time"

// Task represents an IT-support request tracked by deskhub.
type Task struct {
	ID             string     `json:"id"`                // Opaque unique id, immutable
	Title          string     `json:"title"`             // Title (required)
	Description    string     `json:"description"`       // Description
	Status         Status     `json:"status"`            // Current status
	Priority       Priority   `json:"priority"`          // Importance level
	ClientID       string     `json:"clientId"`          // Requester id
	ClientName     string     `json:"clientName"`        // Requester name, snapshotted at write time
	AssignedToID   string     `json:"assignedToId"`      // Assignee id (empty = unassigned)
	AssignedToName string     `json:"assignedToName"`    // Assignee name, snapshotted at write time
	CreatedByID    string     `json:"createdById"`       // Creator id
	CreatedByName  string     `json:"createdByName"`     // Creator name, snapshotted at write time
	CreatedAt      time.Time  `json:"createdAt"`         // Creation time
	UpdatedAt      time.Time  `json:"updatedAt"`         // Refreshed on every mutation
	DueDate        *time.Time `json:"dueDate,omitempty"` // Due date (optional)
}

// IsAssigned returns true if the task has an assignee.
func (t *Task) IsAssigned() bool {
	return t.AssignedToID != ""
}

// IsOverdue returns true if the task has a due date in the past and is not completed.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

// History actions recorded by the task store.
const (
	ActionCreated         = "created"
	ActionStatusChanged   = "status_changed"
	ActionAssigned        = "assigned"
	ActionPriorityChanged = "priority_changed"
)

// TaskHistory is an immutable audit record of one attributed change to a task.
// Entries are append-only and survive deletion of the task they refer to.
type TaskHistory struct {
	ID        string    `json:"id"`        // Opaque unique id
	TaskID    string    `json:"taskId"`    // Owning task id
	UserID    string    `json:"userId"`    // Acting user id
	UserName  string    `json:"userName"`  // Acting user name, snapshotted at write time
	Action    string    `json:"action"`    // Short action tag (see Action constants)
	Details   string    `json:"details"`   // Human-readable description of the change
	CreatedAt time.Time `json:"createdAt"` // Append time
}

// Role identifies what a user is allowed to do in the tracker.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// IsValid returns true if the role is a known valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleEmployee, RoleClient:
		return true
	default:
		return false
	}
}

// Identity describes the actor attributed to a store mutation.
// The store trusts it unconditionally; role gating is the caller's job.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}
