package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kkurihara/planboard/internal/domain"
)

func newProgressCmd(app *App) *cobra.Command {
	var percent int

	cmd := &cobra.Command{
		Use:   "progress NODE_ID",
		Short: "Set a leaf node's progress and roll it up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := app.Progress.SetLeafProgress(context.Background(), args[0], percent)
			if err != nil {
				return err
			}

			fmt.Printf("Set %s to %d%% (%s)\n", chain.Leaf.NodeID, chain.Leaf.Progress, chain.Leaf.Status)
			for _, a := range chain.Ancestors {
				fmt.Printf("  L%d %s -> %d%% (%s)\n", a.Level, a.NodeID, a.Progress, a.Status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&percent, "set", 0, "Progress percentage (0-100)")
	_ = cmd.MarkFlagRequired("set")

	return cmd
}

func newPromoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "promote NODE_ID",
		Short: "Move a node one level up, under its grandparent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangeLevel(app, args[0], domain.DirectionUp)
		},
	}
}

func newDemoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demote NODE_ID",
		Short: "Move a node one level down, under its preceding sibling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangeLevel(app, args[0], domain.DirectionDown)
		},
	}
}

func runChangeLevel(app *App, nodeID string, direction domain.LevelDirection) error {
	result, err := app.Tree.ChangeLevel(context.Background(), nodeID, direction)
	if err != nil {
		return err
	}

	fmt.Printf("Moved %s to L%d under %s\n", result.NodeID, result.NewLevel, result.NewParentID)
	for _, r := range result.Recomputed {
		fmt.Printf("  L%d %s -> %d%% (%s)\n", r.Level, r.NodeID, r.Progress, r.Status)
	}
	return nil
}
