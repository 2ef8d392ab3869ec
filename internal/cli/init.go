package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/app"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize deskhub in the current directory",
		Long: `Initialize deskhub in the current directory.

This command creates the .deskhub/data/ directory and installs the
built-in example tasks as the starting collection. Configuration is
read from .deskhub/config.toml and the global config directory.

Error conditions:
- Already initialized: "deskhub already initialized"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.Initialize(); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized deskhub in %s\n", c.Config.DeskhubDir)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d example task(s) installed\n", len(c.Store.Tasks()))
			return nil
		},
	}
}
