package usecase

import (
	"github.com/google/uuid"

	"github.com/deskhub/deskhub/internal/domain"
)

// mockTaskStore is a test double for domain.TaskStore.
type mockTaskStore struct {
	tasks     []domain.Task
	history   []domain.TaskHistory
	createErr error
	patchErr  error
	deleteErr error
}

func (m *mockTaskStore) Create(draft domain.TaskDraft, creator domain.Identity) (*domain.Task, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
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
		DueDate:       draft.DueDate,
	}
	m.tasks = append(m.tasks, task)
	m.history = append(m.history, domain.TaskHistory{
		TaskID: task.ID, UserID: creator.ID, UserName: creator.Name,
		Action: domain.ActionCreated, Details: "Task created",
	})
	return &task, nil
}

func (m *mockTaskStore) Patch(id string, changes domain.TaskUpdate, _ domain.Identity) (*domain.Task, error) {
	if m.patchErr != nil {
		return nil, m.patchErr
	}
	for i := range m.tasks {
		if m.tasks[i].ID != id {
			continue
		}
		if changes.Title != nil {
			m.tasks[i].Title = *changes.Title
		}
		if changes.Status != nil {
			m.tasks[i].Status = *changes.Status
		}
		if changes.Priority != nil {
			m.tasks[i].Priority = *changes.Priority
		}
		if changes.AssignedToID != nil {
			m.tasks[i].AssignedToID = *changes.AssignedToID
		}
		if changes.AssignedToName != nil {
			m.tasks[i].AssignedToName = *changes.AssignedToName
		}
		if changes.Unassign {
			m.tasks[i].AssignedToID = ""
			m.tasks[i].AssignedToName = ""
		}
		task := m.tasks[i]
		return &task, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (m *mockTaskStore) Delete(id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (m *mockTaskStore) GetTaskByID(id string) (*domain.Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			task := m.tasks[i]
			return &task, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (m *mockTaskStore) Tasks() []domain.Task {
	return append([]domain.Task{}, m.tasks...)
}

func (m *mockTaskStore) filter(keep func(*domain.Task) bool) []domain.Task {
	out := make([]domain.Task, 0)
	for i := range m.tasks {
		if keep(&m.tasks[i]) {
			out = append(out, m.tasks[i])
		}
	}
	return out
}

func (m *mockTaskStore) GetTasksByAssignee(userID string) []domain.Task {
	return m.filter(func(t *domain.Task) bool { return t.AssignedToID == userID })
}

func (m *mockTaskStore) GetTasksByClient(clientID string) []domain.Task {
	return m.filter(func(t *domain.Task) bool { return t.ClientID == clientID })
}

func (m *mockTaskStore) GetTasksByStatus(status domain.Status) []domain.Task {
	return m.filter(func(t *domain.Task) bool { return t.Status == status })
}

func (m *mockTaskStore) GetTaskHistory(taskID string) []domain.TaskHistory {
	out := make([]domain.TaskHistory, 0)
	for _, e := range m.history {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

func (m *mockTaskStore) History() []domain.TaskHistory {
	return append([]domain.TaskHistory{}, m.history...)
}

// mockConfigLoader is a test double for domain.ConfigLoader.
type mockConfigLoader struct {
	config  *domain.Config
	loadErr error
}

func (m *mockConfigLoader) Load() (*domain.Config, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.config, nil
}

// mockSessionProvider is a test double for domain.SessionProvider.
type mockSessionProvider struct {
	current *domain.Identity
	setErr  error
}

func (m *mockSessionProvider) Current() (*domain.Identity, error) {
	if m.current == nil {
		return nil, domain.ErrNotLoggedIn
	}
	return m.current, nil
}

func (m *mockSessionProvider) SetCurrent(id domain.Identity) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.current = &id
	return nil
}

func (m *mockSessionProvider) Clear() error {
	m.current = nil
	return nil
}
