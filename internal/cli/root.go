package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kkurihara/planboard/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Nodes     service.NodeService
	Progress  service.ProgressService
	Tree      service.TreeService
	Stats     service.StatsService
	Allocator service.AllocatorService
	Holidays  service.HolidayService

	Logger   zerolog.Logger
	HTTPAddr string
}

// NewRootCmd creates the top-level "planboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planboard",
		Short: "WBS dashboard with schedule analytics and code allocation",
	}

	root.AddCommand(
		newServeCmd(app),
		newProjectCmd(app),
		newNodeCmd(app),
		newProgressCmd(app),
		newPromoteCmd(app),
		newDemoteCmd(app),
		newStatsCmd(app),
		newAllocateCmd(app),
		newHolidayCmd(app),
	)

	return root
}
