package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/app"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "[server]\naddr = %q\ntoken_ttl = %q\n\n", cfg.Server.Addr, cfg.Server.TokenTTL)
			_, _ = fmt.Fprintf(w, "[log]\nlevel = %q\n\n", cfg.Log.Level)
			if cfg.Storage.Dir != "" {
				_, _ = fmt.Fprintf(w, "[storage]\ndir = %q\n\n", cfg.Storage.Dir)
			}

			if len(cfg.Users) > 0 {
				_, _ = fmt.Fprintln(w, "Users:")
				tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
				_, _ = fmt.Fprintln(tw, "  ID\tNAME\tROLE\tEMAIL")
				for _, id := range cfg.Identities() {
					_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", id.ID, id.Name, id.Role, id.Email)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			for _, warning := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
			}
			return nil
		},
	}
	return cmd
}
