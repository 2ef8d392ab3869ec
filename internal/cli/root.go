// Package cli provides the command-line interface for deskhub.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/app"
	"github.com/deskhub/deskhub/internal/domain"
)

// Command group IDs.
const (
	groupSetup  = "setup"
	groupTask   = "task"
	groupServer = "server"
)

// NewRootCommand creates the root command for deskhub.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "deskhub",
		Short: "IT support task tracker",
		Long: `deskhub is a role-based task tracker for IT support teams.

Clients file requests, employees work them, managers assign and
prioritize. Every change to a task's status, assignee or priority is
recorded in an audit log that outlives the task itself.

Running deskhub with no arguments opens the task dashboard.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return nil
			}
			if c.AppConfig != nil {
				for _, w := range c.AppConfig.Warnings {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupServer, Title: "Server:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupSetup

	logoutCmd := newLogoutCommand(c)
	logoutCmd.GroupID = groupSetup

	whoamiCmd := newWhoamiCommand(c)
	whoamiCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Task management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	assignCmd := newAssignCommand(c)
	assignCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	historyCmd := newHistoryCommand(c)
	historyCmd.GroupID = groupTask

	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupTask

	// Server commands
	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupServer

	root.AddCommand(
		initCmd, loginCmd, logoutCmd, whoamiCmd, configCmd,
		newCmd, listCmd, showCmd, editCmd, assignCmd, rmCmd, historyCmd, boardCmd,
		serveCmd,
	)

	return root
}

// currentActor returns the logged-in CLI identity.
func currentActor(c *app.Container) (domain.Identity, error) {
	id, err := c.CurrentIdentity()
	if err != nil {
		return domain.Identity{}, err
	}
	return *id, nil
}
