package domain

// Status represents the lifecycle state of a task.
// There is no enforced transition order; managers move tasks freely.
type Status string

const (
	StatusPending    Status = "pending"     // Filed, awaiting triage
	StatusInProgress Status = "in_progress" // Being worked on
	StatusInReview   Status = "in_review"   // Work done, awaiting verification
	StatusCompleted  Status = "completed"   // Resolved
)

// AllStatuses returns all valid status values in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusInProgress,
		StatusInReview,
		StatusCompleted,
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusInReview, StatusCompleted:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusInReview:
		return "In Review"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AllPriorities returns all valid priority values from lowest to highest.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Order returns the sort order for a priority (lower = more urgent).
func (p Priority) Order() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Display returns a human-readable representation of the priority.
func (p Priority) Display() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return string(p)
	}
}
