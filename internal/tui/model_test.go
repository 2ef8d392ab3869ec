package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhub/deskhub/internal/domain"
)

type stubStore struct {
	tasks   []domain.Task
	history []domain.TaskHistory
}

func (s *stubStore) Create(domain.TaskDraft, domain.Identity) (*domain.Task, error) {
	return nil, nil
}

func (s *stubStore) Patch(string, domain.TaskUpdate, domain.Identity) (*domain.Task, error) {
	return nil, nil
}

func (s *stubStore) Delete(string) error { return nil }

func (s *stubStore) GetTaskByID(id string) (*domain.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i], nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (s *stubStore) Tasks() []domain.Task { return s.tasks }

func (s *stubStore) GetTasksByAssignee(string) []domain.Task { return nil }
func (s *stubStore) GetTasksByClient(string) []domain.Task   { return nil }

func (s *stubStore) GetTasksByStatus(status domain.Status) []domain.Task {
	var out []domain.Task
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (s *stubStore) GetTaskHistory(taskID string) []domain.TaskHistory {
	var out []domain.TaskHistory
	for _, e := range s.history {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}

func (s *stubStore) History() []domain.TaskHistory { return s.history }

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

func testModel(tasks []domain.Task) *Model {
	store := &stubStore{tasks: tasks}
	clock := stubClock{now: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)}
	actor := domain.Identity{ID: "1", Name: "John Manager", Role: domain.RoleManager}
	return New(store, clock, actor)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", Title: "Fix printer", Status: domain.StatusPending, Priority: domain.PriorityHigh, ClientName: "Mike Client"},
		{ID: "2", Title: "Reset password", Status: domain.StatusInProgress, Priority: domain.PriorityMedium, ClientName: "Mike Client", AssignedToID: "2", AssignedToName: "Sarah Employee"},
		{ID: "3", Title: "Install VPN", Status: domain.StatusPending, Priority: domain.PriorityLow, ClientName: "Mike Client"},
	}
}

func TestNew_LoadsTasksFromStore(t *testing.T) {
	m := testModel(testTasks())

	assert.Len(t, m.tasks, 3)
	assert.Equal(t, 0, m.tab, "should start on the all tab")
	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_CursorMovement(t *testing.T) {
	m := testModel(testTasks())

	updated, _ := m.Update(keyMsg("j"))
	result, ok := updated.(*Model)
	require.True(t, ok)
	assert.Equal(t, 1, result.cursor)

	updated, _ = result.Update(keyMsg("k"))
	result = updated.(*Model)
	assert.Equal(t, 0, result.cursor)

	// cursor stays pinned at the edges
	updated, _ = result.Update(keyMsg("k"))
	result = updated.(*Model)
	assert.Equal(t, 0, result.cursor)
}

func TestUpdate_TabFilterNarrowsVisibleTasks(t *testing.T) {
	m := testModel(testTasks())
	assert.Len(t, m.visibleTasks(), 3)

	// first status tab is pending
	updated, _ := m.Update(keyMsg("l"))
	result := updated.(*Model)
	assert.Equal(t, 1, result.tab)

	visible := result.visibleTasks()
	require.Len(t, visible, 2)
	for _, task := range visible {
		assert.Equal(t, domain.StatusPending, task.Status)
	}
}

func TestUpdate_TabChangeClampsCursor(t *testing.T) {
	m := testModel(testTasks())
	m.cursor = 2

	updated, _ := m.Update(keyMsg("l"))
	result := updated.(*Model)
	assert.Equal(t, 1, result.cursor, "cursor should clamp to the filtered list")
}

func TestUpdate_DetailToggle(t *testing.T) {
	m := testModel(testTasks())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := updated.(*Model)
	assert.True(t, result.detail)

	updated, _ = result.Update(tea.KeyMsg{Type: tea.KeyEscape})
	result = updated.(*Model)
	assert.False(t, result.detail, "escape should close the detail view")
}

func TestUpdate_DetailIgnoredWhenEmpty(t *testing.T) {
	m := testModel(nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := updated.(*Model)
	assert.False(t, result.detail)
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := testModel(testTasks())

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	// escape quits only when no detail view is open
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_RendersTasksAndFooter(t *testing.T) {
	m := testModel(testTasks())
	m.width = 80
	m.height = 24

	out := m.View()
	assert.Contains(t, out, "Fix printer")
	assert.Contains(t, out, "Reset password")
	assert.Contains(t, out, "3 task(s)")
	assert.Contains(t, out, "John Manager")
}

func TestView_DetailShowsHistory(t *testing.T) {
	store := &stubStore{
		tasks: testTasks(),
		history: []domain.TaskHistory{
			{ID: "h1", TaskID: "1", UserName: "John Manager", Action: domain.ActionCreated, Details: "Task created", CreatedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)},
		},
	}
	clock := stubClock{now: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)}
	m := New(store, clock, domain.Identity{ID: "1", Name: "John Manager", Role: domain.RoleManager})
	m.width = 80
	m.height = 24
	m.detail = true

	out := m.View()
	assert.Contains(t, out, "Fix printer")
	assert.Contains(t, out, "Task created")
	assert.Contains(t, out, "Mike Client")
}

func TestView_OverdueMarker(t *testing.T) {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := testModel([]domain.Task{
		{ID: "1", Title: "Stale task", Status: domain.StatusPending, Priority: domain.PriorityHigh, DueDate: &due},
	})
	m.width = 80
	m.height = 24

	assert.Contains(t, m.View(), "overdue")
}

func TestView_LoadingBeforeFirstResize(t *testing.T) {
	m := testModel(testTasks())
	assert.Equal(t, "Loading...", m.View())
}
