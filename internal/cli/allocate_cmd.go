package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAllocateCmd(app *App) *cobra.Command {
	var prefix string
	var count, width int

	cmd := &cobra.Command{
		Use:   "allocate PROJECT_ID",
		Short: "Reserve sequential item codes (ISS, REQ, DIS)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			codes, err := app.Allocator.Allocate(ctx, projectID, prefix, count, width)
			if err != nil {
				return err
			}

			for _, code := range codes {
				fmt.Println(code)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Code prefix (e.g. ISS, REQ, DIS)")
	cmd.Flags().IntVar(&count, "count", 1, "Number of codes to reserve")
	cmd.Flags().IntVar(&width, "width", 0, "Zero-pad width (0 uses the prefix default)")
	_ = cmd.MarkFlagRequired("prefix")

	return cmd
}
