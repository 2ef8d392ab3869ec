// Package store implements the deskhub task store: the authoritative
// in-memory task and history collections, mirrored to a durable blob
// store after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/deskhub/deskhub/internal/domain"
)

// Blob keys for the two persisted collections.
const (
	tasksKey   = "tasks"
	historyKey = "taskHistory"
)

// Update is the partial field replacement accepted by Patch.
type Update = domain.TaskUpdate

// Store owns the task and history collections for the lifetime of the
// process. Collections are ordered: tasks in creation order, history in
// append order. Every mutation persists before committing to memory, so
// the durable mirror can never silently diverge from what callers see.
type Store struct {
	mu      sync.Mutex
	blobs   domain.BlobStore
	clock   domain.Clock
	logger  domain.Logger
	tasks   []domain.Task
	history []domain.TaskHistory
}

// Open loads both collections from the blob store. A missing task
// collection triggers the first-run bootstrap: the built-in seed set is
// installed and persisted. Corrupt persisted data fails closed to the
// same bootstrap instead of crashing. A missing or corrupt history
// collection starts empty; no history is synthesized for seed tasks.
func Open(blobs domain.BlobStore, clock domain.Clock, logger domain.Logger) (*Store, error) {
	s := &Store{blobs: blobs, clock: clock, logger: logger}

	tasks, err := loadCollection[domain.Task](blobs, tasksKey)
	switch {
	case errors.Is(err, domain.ErrBlobNotFound):
		s.tasks = SeedTasks()
		if err := s.persistTasks(s.tasks); err != nil {
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	case err != nil:
		s.warn("", "store", fmt.Sprintf("discarding corrupt task collection: %v", err))
		s.tasks = SeedTasks()
		if err := s.persistTasks(s.tasks); err != nil {
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	default:
		s.tasks = tasks
	}

	history, err := loadCollection[domain.TaskHistory](blobs, historyKey)
	switch {
	case errors.Is(err, domain.ErrBlobNotFound):
		s.history = nil
	case err != nil:
		s.warn("", "store", fmt.Sprintf("discarding corrupt history collection: %v", err))
		s.history = nil
	default:
		s.history = history
	}

	return s, nil
}

// Create files a new task from the draft. Status is forced to pending
// and the assignee is forced empty regardless of input; both timestamps
// are set to the current time. One "created" history entry is appended,
// attributed to the creator.
func (s *Store) Create(draft domain.TaskDraft, creator domain.Identity) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	task := domain.Task{
		ID:            uuid.NewString(),
		Title:         draft.Title,
		Description:   draft.Description,
		Status:        domain.StatusPending,
		Priority:      draft.Priority,
		ClientID:      draft.ClientID,
		ClientName:    draft.ClientName,
		CreatedByID:   creator.ID,
		CreatedByName: creator.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
		DueDate:       draft.DueDate,
	}

	next := append(copyTasks(s.tasks), task)
	if err := s.persistTasks(next); err != nil {
		return nil, err
	}
	s.tasks = next

	entry := s.newEntry(task.ID, creator, domain.ActionCreated, "Task created")
	if err := s.appendHistory(entry); err != nil {
		return nil, err
	}

	s.info(task.ID, "task", fmt.Sprintf("created: %q", task.Title))
	return &task, nil
}

// Patch merges a partial update over the task with the given id and
// refreshes UpdatedAt, even when no visible field changes. Changes to
// the three tracked fields produce history entries attributed to the
// acting user, one per changed field, in fixed order: status,
// assignee, priority. Clearing the assignee intentionally produces no
// entry; the audit log only ever records who a task was handed to.
func (s *Store) Patch(id string, changes Update, actor domain.Identity) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// AssignedToID and AssignedToName are both empty or both set on
	// every stored task; a one-sided update would break that.
	if (changes.AssignedToID == nil) != (changes.AssignedToName == nil) {
		return nil, domain.ErrPartialAssignment
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}

	old := s.tasks[idx]
	updated := merge(old, changes)
	updated.UpdatedAt = s.clock.Now()

	var entries []domain.TaskHistory
	if changes.Status != nil && updated.Status != old.Status {
		entries = append(entries, s.newEntry(id, actor, domain.ActionStatusChanged,
			fmt.Sprintf("Status changed from %s to %s", old.Status, updated.Status)))
	}
	if updated.AssignedToID != "" && updated.AssignedToID != old.AssignedToID {
		entries = append(entries, s.newEntry(id, actor, domain.ActionAssigned,
			fmt.Sprintf("Task assigned to %s", updated.AssignedToName)))
	}
	if changes.Priority != nil && updated.Priority != old.Priority {
		entries = append(entries, s.newEntry(id, actor, domain.ActionPriorityChanged,
			fmt.Sprintf("Priority changed from %s to %s", old.Priority, updated.Priority)))
	}

	next := copyTasks(s.tasks)
	next[idx] = updated
	if err := s.persistTasks(next); err != nil {
		return nil, err
	}
	s.tasks = next

	if len(entries) > 0 {
		if err := s.appendHistory(entries...); err != nil {
			return nil, err
		}
	}

	s.info(id, "task", fmt.Sprintf("updated (%d audit entries)", len(entries)))
	return &updated, nil
}

// Delete removes the task with the given id. History entries referring
// to it are retained; the audit log outlives the task.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrTaskNotFound
	}

	next := make([]domain.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:idx]...)
	next = append(next, s.tasks[idx+1:]...)
	if err := s.persistTasks(next); err != nil {
		return err
	}
	s.tasks = next

	s.info(id, "task", "deleted")
	return nil
}

// GetTaskByID returns the task with the given id.
func (s *Store) GetTaskByID(id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}
	task := s.tasks[idx]
	return &task, nil
}

// Tasks returns all tasks in creation order.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTasks(s.tasks)
}

// GetTasksByAssignee returns the tasks assigned to userID, in creation
// order. An unknown id yields an empty result, not an error.
func (s *Store) GetTasksByAssignee(userID string) []domain.Task {
	return s.filter(func(t *domain.Task) bool { return t.AssignedToID == userID })
}

// GetTasksByClient returns the tasks requested by clientID, in creation order.
func (s *Store) GetTasksByClient(clientID string) []domain.Task {
	return s.filter(func(t *domain.Task) bool { return t.ClientID == clientID })
}

// GetTasksByStatus returns the tasks with the given status, in creation order.
func (s *Store) GetTasksByStatus(status domain.Status) []domain.Task {
	return s.filter(func(t *domain.Task) bool { return t.Status == status })
}

// GetTaskHistory returns the history entries for a task in append order
// (oldest first), including entries for tasks that have been deleted.
func (s *Store) GetTaskHistory(taskID string) []domain.TaskHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.TaskHistory, 0)
	for _, e := range s.history {
		if e.TaskID == taskID {
			entries = append(entries, e)
		}
	}
	return entries
}

// History returns the full audit log in append order.
func (s *Store) History() []domain.TaskHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.TaskHistory, len(s.history))
	copy(entries, s.history)
	return entries
}

func (s *Store) filter(keep func(*domain.Task) bool) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := make([]domain.Task, 0)
	for i := range s.tasks {
		if keep(&s.tasks[i]) {
			tasks = append(tasks, s.tasks[i])
		}
	}
	return tasks
}

// indexOf returns the position of the task with the given id, or -1.
// Callers must hold s.mu.
func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) newEntry(taskID string, actor domain.Identity, action, details string) domain.TaskHistory {
	return domain.TaskHistory{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    actor.ID,
		UserName:  actor.Name,
		Action:    action,
		Details:   details,
		CreatedAt: s.clock.Now(),
	}
}

// appendHistory persists the history collection with the new entries
// appended, then commits it. Callers must hold s.mu.
func (s *Store) appendHistory(entries ...domain.TaskHistory) error {
	next := make([]domain.TaskHistory, 0, len(s.history)+len(entries))
	next = append(next, s.history...)
	next = append(next, entries...)

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.blobs.Put(historyKey, data); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	s.history = next
	return nil
}

func (s *Store) persistTasks(tasks []domain.Task) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	if err := s.blobs.Put(tasksKey, data); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

func loadCollection[T any](blobs domain.BlobStore, key string) ([]T, error) {
	data, err := blobs.Get(key)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %q: %w", key, err)
	}
	return items, nil
}

func merge(t domain.Task, u Update) domain.Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.AssignedToID != nil {
		t.AssignedToID = *u.AssignedToID
	}
	if u.AssignedToName != nil {
		t.AssignedToName = *u.AssignedToName
	}
	if u.Unassign {
		t.AssignedToID = ""
		t.AssignedToName = ""
	}
	if u.DueDate != nil {
		t.DueDate = u.DueDate
	}
	if u.ClearDueDate {
		t.DueDate = nil
	}
	return t
}

func copyTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}

func (s *Store) info(taskID, category, msg string) {
	if s.logger != nil {
		s.logger.Info(taskID, category, msg)
	}
}

func (s *Store) warn(taskID, category, msg string) {
	if s.logger != nil {
		s.logger.Warn(taskID, category, msg)
	}
}

// Ensure Store implements the domain interface.
var _ domain.TaskStore = (*Store)(nil)
