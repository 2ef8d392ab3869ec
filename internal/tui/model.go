// Package tui implements the deskhub terminal dashboard: a
// status-filtered task board backed by the task store.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deskhub/deskhub/internal/domain"
)

// filterTabs is the fixed tab order: all tasks, then one tab per status.
var filterTabs = append([]domain.Status{""}, domain.AllStatuses()...)

// Model is the bubbletea model for the dashboard.
type Model struct {
	store  domain.TaskStore
	clock  domain.Clock
	actor  domain.Identity
	keys   KeyMap
	styles Styles

	tasks  []domain.Task
	tab    int // index into filterTabs
	cursor int
	detail bool // detail view for the task under the cursor
	width  int
	height int
}

// New creates a dashboard model over the task store.
func New(store domain.TaskStore, clock domain.Clock, actor domain.Identity) *Model {
	m := &Model{
		store:  store,
		clock:  clock,
		actor:  actor,
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Escape):
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.visibleTasks())-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + len(filterTabs) - 1) % len(filterTabs)
			m.clampCursor()

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % len(filterTabs)
			m.clampCursor()

		case key.Matches(msg, m.keys.Detail):
			if len(m.visibleTasks()) > 0 {
				m.detail = !m.detail
			}

		case key.Matches(msg, m.keys.Refresh):
			m.reload()
		}
	}
	return m, nil
}

// reload refreshes the task snapshot from the store.
func (m *Model) reload() {
	m.tasks = m.store.Tasks()
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if n == 0 {
		m.cursor = 0
		m.detail = false
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

// visibleTasks returns the tasks matching the active filter tab.
func (m *Model) visibleTasks() []domain.Task {
	status := filterTabs[m.tab]
	if status == "" {
		return m.tasks
	}
	out := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// selectedTask returns the task under the cursor, if any.
func (m *Model) selectedTask() *domain.Task {
	tasks := m.visibleTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	return &tasks[m.cursor]
}
