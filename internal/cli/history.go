package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/app"
	"github.com/deskhub/deskhub/internal/usecase"
)

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "history [task-id]",
		Short: "Show the task audit log",
		Long: `Show the audit log: who changed what, and when.

With a task id, only that task's entries are shown. Entries survive
task deletion, so this works for deleted tasks too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var taskID string
			if len(args) == 1 {
				taskID = args[0]
			}

			uc, err := c.TaskHistoryUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.TaskHistoryInput{TaskID: taskID})
			if err != nil {
				return err
			}

			if len(out.Entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No history")
				return nil
			}

			now := c.Clock.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "WHEN\tTASK\tUSER\tDETAILS")
			for _, e := range out.Entries {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					formatRelative(e.CreatedAt, now), e.TaskID, e.UserName, e.Details)
			}
			return w.Flush()
		},
	}
}
