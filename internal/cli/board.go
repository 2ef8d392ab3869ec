package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/app"
	"github.com/deskhub/deskhub/internal/tui"
)

func newBoardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive task dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, c)
		},
	}
}

// runDashboard starts the TUI. It is also the root command's default action.
func runDashboard(_ *cobra.Command, c *app.Container) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	store, err := c.RequireStore()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(store, c.Clock, actor), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
