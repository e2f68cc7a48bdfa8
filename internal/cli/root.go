package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects    service.ProjectService
	WBS         service.WBSService
	Allocations service.AllocationService
	Matrix      service.MatrixService
	Baselines   service.BaselineService
	Forecast    service.ForecastService
	Optimizer   service.OptimizerService
	Digest      service.DigestService

	// IsInteractive reports whether stdin is a terminal. Confirmation
	// prompts are skipped when it is nil or false.
	IsInteractive func() bool
	// Now overrides the wall clock for date defaults.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "sitepace" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "sitepace",
		Short:         "Construction schedule tracking and forecasting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("project", "p", "", "Project code or ID")

	root.AddCommand(
		newProjectCmd(app),
		newWBSCmd(app),
		newAllocCmd(app),
		newChatCmd(app),
		newMatrixCmd(app),
		newBaselineCmd(app),
		newForecastCmd(app),
		newOptimizeCmd(app),
		newDigestCmd(app),
	)

	return root
}

// requireProject resolves the --project flag to a stored project.
func requireProject(ctx context.Context, cmd *cobra.Command, app *App) (*domain.Project, error) {
	ref, _ := cmd.Flags().GetString("project")
	if ref == "" {
		return nil, fmt.Errorf("--project is required")
	}
	return app.Projects.Resolve(ctx, ref)
}
