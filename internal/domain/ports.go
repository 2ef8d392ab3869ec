package domain

import (
	"slices"
	"strings"
	"time"
)

// BlobStore persists named byte blobs durably.
// Writes replace the whole blob atomically; Get returns ErrBlobNotFound
// for keys that have never been written.
type BlobStore interface {
	// Get reads the blob stored under key.
	Get(key string) ([]byte, error)

	// Put atomically replaces the blob stored under key.
	Put(key string, data []byte) error

	// Delete removes the blob stored under key, if present.
	Delete(key string) error
}

// TaskUpdate is a partial set of field replacements for a task.
// Nil pointers mean "no change". Clearing the assignee or due date is
// expressed with the explicit Unassign/ClearDueDate flags.
type TaskUpdate struct {
	Title          *string
	Description    *string
	Status         *Status
	Priority       *Priority
	AssignedToID   *string
	AssignedToName *string
	DueDate        *time.Time
	Unassign       bool
	ClearDueDate   bool
}

// IsZero returns true if the update changes nothing.
func (u TaskUpdate) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil &&
		u.Priority == nil && u.AssignedToID == nil && u.AssignedToName == nil &&
		u.DueDate == nil && !u.Unassign && !u.ClearDueDate
}

// TaskStore is the authoritative task and history collection.
// All mutations are durably persisted before they become visible.
type TaskStore interface {
	// Create files a new task from the draft, attributed to creator.
	Create(draft TaskDraft, creator Identity) (*Task, error)

	// Patch merges a partial update over the task with the given id.
	Patch(id string, changes TaskUpdate, actor Identity) (*Task, error)

	// Delete removes the task with the given id. Its history is retained.
	Delete(id string) error

	// GetTaskByID returns the task with the given id, or ErrTaskNotFound.
	GetTaskByID(id string) (*Task, error)

	// Tasks returns all tasks in creation order.
	Tasks() []Task

	// GetTasksByAssignee returns the tasks assigned to userID.
	GetTasksByAssignee(userID string) []Task

	// GetTasksByClient returns the tasks requested by clientID.
	GetTasksByClient(clientID string) []Task

	// GetTasksByStatus returns the tasks with the given status.
	GetTasksByStatus(status Status) []Task

	// GetTaskHistory returns the history entries for a task, oldest first.
	GetTaskHistory(taskID string) []TaskHistory

	// History returns the full audit log in append order.
	History() []TaskHistory
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error

	// IsInitialized reports whether the store exists.
	IsInitialized() bool
}

// SessionProvider supplies the identity of the current CLI actor.
type SessionProvider interface {
	// Current returns the logged-in identity, or ErrNotLoggedIn.
	Current() (*Identity, error)

	// SetCurrent records the identity as the current actor.
	SetCurrent(id Identity) error

	// Clear removes the current session.
	Clear() error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (local + global).
	Load() (*Config, error)
}

// Config represents the application configuration.
type Config struct {
	Users    map[string]User // Per-user settings [users.<id>]
	Server   ServerConfig    // [server] settings
	Log      LogConfig       // [log] settings
	Storage  StorageConfig   // [storage] settings
	Warnings []string        // Unknown keys found while parsing
}

// User holds one configured account from a [users.<id>] section.
type User struct {
	Name     string // Display name
	Email    string // Login email for the HTTP API
	Role     string // manager, employee or client
	Password string // Password for the HTTP API token endpoint
}

// ServerConfig holds HTTP server settings from the [server] section.
type ServerConfig struct {
	Addr     string // Listen address, e.g. ":8000"
	TokenTTL string // Access token lifetime, Go duration string
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// StorageConfig holds persistence settings from the [storage] section.
type StorageConfig struct {
	Dir string // Data directory override (default: .deskhub/data)
}

// Identities returns the configured users as identities, in id order.
func (c *Config) Identities() []Identity {
	ids := make([]Identity, 0, len(c.Users))
	for id, u := range c.Users {
		ids = append(ids, Identity{ID: id, Name: u.Name, Email: u.Email, Role: Role(u.Role)})
	}
	slices.SortFunc(ids, func(a, b Identity) int {
		return strings.Compare(a.ID, b.ID)
	})
	return ids
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Logger records attributed events to the deskhub log files.
type Logger interface {
	Debug(taskID, category, msg string)
	Info(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}
