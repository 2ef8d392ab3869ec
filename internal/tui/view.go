package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles for the dashboard.
type Styles struct {
	App       lipgloss.Style
	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Row       lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Overdue   lipgloss.Style
	Footer    lipgloss.Style
}

// DefaultStyles returns the default dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		App:       lipgloss.NewStyle().Padding(1, 2),
		Header:    lipgloss.NewStyle().Bold(true),
		Tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("243")),
		ActiveTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true),
		Row:       lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Footer:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")).MarginTop(1),
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	if m.detail {
		b.WriteString(m.viewDetail())
	} else {
		b.WriteString(m.viewTaskList())
	}

	b.WriteString(m.viewFooter())
	return m.styles.App.Render(b.String())
}

func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("deskhub")
	who := m.styles.Muted.Render(fmt.Sprintf("%s (%s)", m.actor.Name, m.actor.Role))
	return title + "  " + who
}

func (m *Model) viewTabs() string {
	var tabs []string
	for i, status := range filterTabs {
		label := "All"
		if status != "" {
			label = status.Display()
		}
		if i == m.tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) viewTaskList() string {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return m.styles.Muted.Render("No tasks") + "\n"
	}

	now := m.clock.Now()
	var b strings.Builder
	for i, t := range tasks {
		cursor := "  "
		style := m.styles.Row
		if i == m.cursor {
			cursor = "> "
			style = m.styles.Selected
		}

		assignee := "unassigned"
		if t.IsAssigned() {
			assignee = t.AssignedToName
		}
		line := fmt.Sprintf("%s[%s] %-8s %-20s %s", cursor, t.Status, t.Priority, assignee, t.Title)
		if t.IsOverdue(now) {
			line += m.styles.Overdue.Render("  overdue")
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewDetail() string {
	t := m.selectedTask()
	if t == nil {
		return m.styles.Muted.Render("No task selected") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(t.Title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Status:    %s\n", t.Status.Display()))
	b.WriteString(fmt.Sprintf("Priority:  %s\n", t.Priority.Display()))
	b.WriteString(fmt.Sprintf("Client:    %s\n", t.ClientName))
	if t.IsAssigned() {
		b.WriteString(fmt.Sprintf("Assignee:  %s\n", t.AssignedToName))
	} else {
		b.WriteString("Assignee:  (unassigned)\n")
	}
	if t.DueDate != nil {
		b.WriteString(fmt.Sprintf("Due:       %s\n", t.DueDate.Format("2006-01-02")))
	}
	if t.Description != "" {
		b.WriteString("\n" + t.Description + "\n")
	}

	if history := m.store.GetTaskHistory(t.ID); len(history) > 0 {
		b.WriteString("\n" + m.styles.Header.Render("History") + "\n")
		for _, e := range history {
			b.WriteString(m.styles.Muted.Render(
				fmt.Sprintf("%s  %s (%s)", e.CreatedAt.Format("2006-01-02 15:04"), e.Details, e.UserName)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) viewFooter() string {
	hints := "↑/↓ move · ←/→ filter · enter details · r refresh · q quit"
	if m.detail {
		hints = "esc back · q quit"
	}
	count := fmt.Sprintf("%d task(s)", len(m.visibleTasks()))
	return m.styles.Footer.Render(count + "  " + hints)
}
