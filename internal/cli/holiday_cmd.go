package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kkurihara/planboard/internal/cli/formatter"
	"github.com/kkurihara/planboard/internal/domain"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage non-working days",
	}

	cmd.AddCommand(
		newHolidayAddCmd(app),
		newHolidayListCmd(app),
		newHolidayRemoveCmd(app),
	)

	return cmd
}

func newHolidayAddCmd(app *App) *cobra.Command {
	var projectRef, name, date, end string
	var global bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a holiday or holiday range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			day, err := time.Parse(dateLayout, date)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", date, err)
			}
			endDate, err := parseDateFlag(end)
			if err != nil {
				return err
			}

			h := &domain.Holiday{Date: day, EndDate: endDate, Name: name}
			if !global {
				if projectRef == "" {
					return fmt.Errorf("either --project or --global is required")
				}
				projectID, err := resolveProjectID(ctx, app, projectRef)
				if err != nil {
					return err
				}
				h.ProjectID = &projectID
			}

			if err := app.Holidays.Create(ctx, h); err != nil {
				return err
			}

			fmt.Printf("Added holiday %s (%s)\n", h.Name, h.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectRef, "project", "", "Project ID the holiday applies to")
	cmd.Flags().BoolVar(&global, "global", false, "Apply to every project")
	cmd.Flags().StringVar(&name, "name", "", "Holiday name")
	cmd.Flags().StringVar(&date, "date", "", "Holiday date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "until", "", "Range end date, inclusive (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newHolidayListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT_ID",
		Short: "List holidays visible to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			holidays, err := app.Holidays.ListForProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(holidays) == 0 {
				fmt.Println("No holidays found.")
				return nil
			}

			rows := make([][]string, 0, len(holidays))
			for _, h := range holidays {
				scope := "project"
				if h.ProjectID == nil {
					scope = "global"
				}
				until := "-"
				if h.EndDate != nil {
					until = h.EndDate.Format(dateLayout)
				}
				rows = append(rows, []string{h.ID, h.Date.Format(dateLayout), until, h.Name, scope})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "DATE", "UNTIL", "NAME", "SCOPE"}, rows))
			return nil
		},
	}
}

func newHolidayRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a holiday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Holidays.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed holiday %s\n", args[0])
			return nil
		},
	}
}
