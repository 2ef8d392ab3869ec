package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskhub/deskhub/internal/app"
	"github.com/deskhub/deskhub/internal/domain"
	"github.com/deskhub/deskhub/internal/usecase"
)

const dueDateLayout = "2006-01-02"

// newNewCommand creates the new command for filing tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Priority    string
		Client      string
		Due         string
		From        string
		DryRun      bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "File a new task",
		Long: `File a new support task.

The task is created with status 'pending' and no assignee. The client
defaults to the logged-in user; managers can file on a client's behalf
with --client.

Examples:
  # File a task
  deskhub new --title "Printer jam on floor 2"

  # File with priority and due date
  deskhub new --title "Replace UPS battery" --priority urgent --due 2025-03-01

  # File on behalf of a configured client
  deskhub new --title "New laptop setup" --client c1

  # File tasks in bulk from a YAML file
  deskhub new --from tasks.yaml

  # Preview the file without creating anything
  deskhub new --from tasks.yaml --dry-run

File format for --from:
  - title: Replace projector cable
    priority: high
    clientId: c1
    clientName: Mike Client
    dueDate: 2025-02-01T00:00:00Z
  - title: Password reset for new hire`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := currentActor(c)
			if err != nil {
				return err
			}

			if opts.From != "" {
				return importTasksFromFile(cmd, c, opts.From, opts.DryRun, actor)
			}

			if opts.Title == "" {
				return fmt.Errorf("required flag(s) \"title\" not set")
			}

			input := usecase.FileTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				Priority:    domain.Priority(opts.Priority),
				Actor:       actor,
			}
			if opts.Client != "" {
				client, err := resolveUser(c, opts.Client)
				if err != nil {
					return err
				}
				input.ClientID = client.ID
				input.ClientName = client.Name
			}
			if opts.Due != "" {
				due, err := time.Parse(dueDateLayout, opts.Due)
				if err != nil {
					return fmt.Errorf("parse due date: %w", err)
				}
				input.DueDate = &due
			}

			uc, err := c.FileTaskUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Filed task %s: %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required unless --from is used)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority: low, medium, high, urgent (default: medium)")
	cmd.Flags().StringVar(&opts.Client, "client", "", "File on behalf of this configured user id")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.From, "from", "", "File tasks from a YAML file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Preview tasks without creating (requires --from)")

	return cmd
}

// importTasksFromFile files tasks in bulk from a YAML file.
func importTasksFromFile(cmd *cobra.Command, c *app.Container, filePath string, dryRun bool, actor domain.Identity) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	uc, err := c.ImportTasksUseCase()
	if err != nil {
		return err
	}
	out, err := uc.Execute(cmd.Context(), usecase.ImportTasksInput{
		Content: content,
		Actor:   actor,
		DryRun:  dryRun,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dryRun {
		_, _ = fmt.Fprintln(w, "Dry run - tasks that would be filed:")
	}
	for _, task := range out.Tasks {
		if dryRun {
			_, _ = fmt.Fprintf(w, "  %s (%s, client: %s)\n", task.Title, task.Priority, task.ClientName)
		} else {
			_, _ = fmt.Fprintf(w, "Filed task %s: %s\n", task.ID, task.Title)
		}
	}
	if !dryRun {
		_, _ = fmt.Fprintf(w, "\nFiled %d task(s)\n", len(out.Tasks))
	}
	return nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status   string
		Assignee string
		Client   string
		Mine     bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display a list of tasks in creation order.

Output format is tab-separated with columns:
  ID, STATUS, PRIORITY, ASSIGNEE, DUE, TITLE

At most one filter applies.

Examples:
  deskhub list
  deskhub list --status pending
  deskhub list --assignee 2
  deskhub list --client c1
  deskhub list --mine`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := usecase.ListTasksInput{
				Status:     domain.Status(opts.Status),
				AssigneeID: opts.Assignee,
				ClientID:   opts.Client,
			}
			if opts.Mine {
				actor, err := currentActor(c)
				if err != nil {
					return err
				}
				if actor.Role == domain.RoleClient {
					input.ClientID = actor.ID
				} else {
					input.AssigneeID = actor.ID
				}
			}

			uc, err := c.ListTasksUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			return renderTaskTable(cmd, out.Tasks, c.Clock.Now())
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Filter by assignee user id")
	cmd.Flags().StringVar(&opts.Client, "client", "", "Filter by client user id")
	cmd.Flags().BoolVar(&opts.Mine, "mine", false, "Show my tasks (assigned to me, or filed by me for clients)")

	return cmd
}

func renderTaskTable(cmd *cobra.Command, tasks []domain.Task, now time.Time) error {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No tasks")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tASSIGNEE\tDUE\tTITLE")
	for _, t := range tasks {
		assignee := "-"
		if t.IsAssigned() {
			assignee = t.AssignedToName
		}
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format(dueDateLayout)
			if t.IsOverdue(now) {
				due += " !"
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Status, t.Priority, assignee, due, t.Title)
	}
	return w.Flush()
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := c.ShowTaskUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			t := out.Task
			_, _ = fmt.Fprintf(w, "Task %s: %s\n", t.ID, t.Title)
			_, _ = fmt.Fprintf(w, "  Status:    %s\n", t.Status.Display())
			_, _ = fmt.Fprintf(w, "  Priority:  %s\n", t.Priority.Display())
			_, _ = fmt.Fprintf(w, "  Client:    %s\n", t.ClientName)
			if t.IsAssigned() {
				_, _ = fmt.Fprintf(w, "  Assignee:  %s\n", t.AssignedToName)
			} else {
				_, _ = fmt.Fprintf(w, "  Assignee:  (unassigned)\n")
			}
			if t.DueDate != nil {
				_, _ = fmt.Fprintf(w, "  Due:       %s\n", t.DueDate.Format(dueDateLayout))
			}
			_, _ = fmt.Fprintf(w, "  Created:   %s by %s\n", t.CreatedAt.Format(time.RFC3339), t.CreatedByName)
			_, _ = fmt.Fprintf(w, "  Updated:   %s\n", t.UpdatedAt.Format(time.RFC3339))
			if t.Description != "" {
				_, _ = fmt.Fprintf(w, "\n%s\n", t.Description)
			}

			if len(out.History) > 0 {
				_, _ = fmt.Fprintln(w, "\nHistory:")
				for _, e := range out.History {
					_, _ = fmt.Fprintf(w, "  %s  %s (%s)\n",
						e.CreatedAt.Format("2006-01-02 15:04"), e.Details, e.UserName)
				}
			}
			return nil
		},
	}
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title    string
		Body     string
		Status   string
		Priority string
		Due      string
		ClearDue bool
	}

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit task fields",
		Long: `Edit fields of an existing task. Only the given flags change;
everything else is left as is. Status and priority changes are
recorded in the task history.

Examples:
  deskhub edit 42 --status in_progress
  deskhub edit 42 --priority urgent --due 2025-03-01
  deskhub edit 42 --title "Replace projector cable (room 4)"
  deskhub edit 42 --clear-due`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := currentActor(c)
			if err != nil {
				return err
			}

			var changes domain.TaskUpdate
			if cmd.Flags().Changed("title") {
				changes.Title = &opts.Title
			}
			if cmd.Flags().Changed("body") {
				changes.Description = &opts.Body
			}
			if opts.Status != "" {
				status := domain.Status(opts.Status)
				changes.Status = &status
			}
			if opts.Priority != "" {
				priority := domain.Priority(opts.Priority)
				changes.Priority = &priority
			}
			if opts.Due != "" {
				due, err := time.Parse(dueDateLayout, opts.Due)
				if err != nil {
					return fmt.Errorf("parse due date: %w", err)
				}
				changes.DueDate = &due
			}
			changes.ClearDueDate = opts.ClearDue

			uc, err := c.UpdateTaskUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.UpdateTaskInput{
				TaskID:  args[0],
				Changes: changes,
				Actor:   actor,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", out.Task.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Body, "body", "", "New description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status: pending, in_progress, in_review, completed")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority: low, medium, high, urgent")
	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.ClearDue, "clear-due", false, "Remove the due date")

	return cmd
}

// newAssignCommand creates the assign command.
func newAssignCommand(c *app.Container) *cobra.Command {
	var unassign bool

	cmd := &cobra.Command{
		Use:   "assign <task-id> [user-id]",
		Short: "Assign a task to a user",
		Long: `Assign a task to a configured user, or clear the assignment.

Assignments are recorded in the task history. Clearing an assignment
is not; the audit log only records who a task was handed to.

Examples:
  deskhub assign 42 e1
  deskhub assign 42 --none`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := currentActor(c)
			if err != nil {
				return err
			}

			var changes domain.TaskUpdate
			switch {
			case unassign:
				changes.Unassign = true
			case len(args) == 2:
				assignee, err := resolveUser(c, args[1])
				if err != nil {
					return err
				}
				changes.AssignedToID = &assignee.ID
				changes.AssignedToName = &assignee.Name
			default:
				return fmt.Errorf("either a user id or --none is required")
			}

			uc, err := c.UpdateTaskUseCase()
			if err != nil {
				return err
			}
			out, err := uc.Execute(cmd.Context(), usecase.UpdateTaskInput{
				TaskID:  args[0],
				Changes: changes,
				Actor:   actor,
			})
			if err != nil {
				return err
			}

			if unassign {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared assignment of task %s\n", out.Task.ID)
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Assigned task %s to %s\n", out.Task.ID, out.Task.AssignedToName)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unassign, "none", false, "Clear the assignment")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Long: `Delete a task. Its history entries are retained and remain
visible via 'deskhub history <task-id>'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := currentActor(c)
			if err != nil {
				return err
			}

			uc, err := c.DeleteTaskUseCase()
			if err != nil {
				return err
			}
			if err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{
				TaskID: args[0],
				Actor:  actor,
			}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
}

// resolveUser looks up a configured user by id.
func resolveUser(c *app.Container, userID string) (domain.Identity, error) {
	cfg := c.AppConfig
	if cfg == nil {
		loaded, err := c.ConfigLoader.Load()
		if err != nil {
			return domain.Identity{}, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	user, ok := cfg.Users[userID]
	if !ok {
		return domain.Identity{}, fmt.Errorf("%w: %q", domain.ErrUserNotFound, userID)
	}
	return domain.Identity{
		ID:    userID,
		Name:  user.Name,
		Email: user.Email,
		Role:  domain.Role(user.Role),
	}, nil
}

// formatRelative renders a short "how long ago" string for history output.
func formatRelative(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
