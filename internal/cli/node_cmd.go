package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kkurihara/planboard/internal/cli/formatter"
	"github.com/kkurihara/planboard/internal/domain"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage WBS nodes",
	}

	cmd.AddCommand(
		newNodeAddCmd(app),
		newNodeInspectCmd(app),
		newNodeUpdateCmd(app),
		newNodeRemoveCmd(app),
	)

	return cmd
}

func applyNodeFlags(cmd *cobra.Command, n *domain.WbsNode, title, start, end string, weight float64, assignees []string) error {
	var err error
	if cmd.Flags().Changed("title") {
		n.Title = title
	}
	if cmd.Flags().Changed("weight") {
		n.Weight = &weight
	}
	if cmd.Flags().Changed("start") {
		if n.StartDate, err = parseDateFlag(start); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("end") {
		if n.EndDate, err = parseDateFlag(end); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("assignee") {
		n.Assignees = assignees
	}
	return nil
}

func newNodeAddCmd(app *App) *cobra.Command {
	var parentID, title, start, end string
	var weight float64
	var assignees []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a node under a parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			var n domain.WbsNode
			n.Title = title
			if err := applyNodeFlags(cmd, &n, title, start, end, weight, assignees); err != nil {
				return err
			}

			if err := app.Nodes.Create(context.Background(), parentID, &n); err != nil {
				return err
			}

			fmt.Printf("Created node %s at L%d (%s)\n", n.Title, n.Level, n.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&parentID, "parent", "", "Parent node ID (use the project root node for L1)")
	cmd.Flags().StringVar(&title, "title", "", "Node title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Rollup weight (omit for equal split)")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&assignees, "assignee", nil, "Assignee (repeatable)")
	_ = cmd.MarkFlagRequired("parent")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNodeInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show node details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Nodes.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatNode(n))
			return nil
		},
	}
}

func newNodeUpdateCmd(app *App) *cobra.Command {
	var title, start, end string
	var weight float64
	var assignees []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a node's work attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			n, err := app.Nodes.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := applyNodeFlags(cmd, n, title, start, end, weight, assignees); err != nil {
				return err
			}

			if err := app.Nodes.Update(ctx, n); err != nil {
				return err
			}

			fmt.Printf("Updated node %s\n", n.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Node title")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Rollup weight")
	cmd.Flags().StringVar(&start, "start", "", "Planned start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&assignees, "assignee", nil, "Assignee (repeatable)")

	return cmd
}

func newNodeRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a node and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Nodes.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed node %s\n", args[0])
			return nil
		},
	}
}
