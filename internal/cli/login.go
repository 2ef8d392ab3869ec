package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/app"
	"github.com/deskhub/deskhub/internal/usecase"
)

// newLoginCommand creates the login command.
func newLoginCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "login <user-id>",
		Short: "Start a session as a configured user",
		Long: `Start a CLI session as a user from the [users.<id>] config sections.

Subsequent task commands are attributed to this user. No password is
required here; credential checks belong to the HTTP API.

Examples:
  deskhub login m1
  deskhub whoami`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.LoginUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.LoginInput{UserID: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", out.Identity.Name, out.Identity.Role)
			return nil
		},
	}
}

// newLogoutCommand creates the logout command.
func newLogoutCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.Sessions.Clear(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// newWhoamiCommand creates the whoami command.
func newWhoamiCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := c.CurrentIdentity()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n", id.ID, id.Name, id.Role)
			return nil
		},
	}
}
