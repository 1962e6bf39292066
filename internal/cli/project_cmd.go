package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkurihara/planboard/internal/cli/formatter"
	"github.com/kkurihara/planboard/internal/domain"
)

const dateLayout = "2006-01-02"

// resolveProjectID accepts a full UUID or an unambiguous UUID prefix.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectTreeCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag(start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag(end)
			if err != nil {
				return err
			}

			p := &domain.Project{
				Name:      name,
				StartDate: startDate,
				EndDate:   endDate,
			}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Print(formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectTreeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tree ID",
		Short: "Show the project's WBS tree with rolled-up progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			nodes, err := app.Nodes.Tree(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatWbsTree(nodes))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("start") {
				if p.StartDate, err = parseDateFlag(start); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if p.EndDate, err = parseDateFlag(end); err != nil {
					return err
				}
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")

	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a project and its whole tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", projectID)
			return nil
		},
	}
}
