package cli

import (
	"context"
	"fmt"

	siteapp "github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newForecastCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Project completion dates and risk for every item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			now := app.now()
			resp, err := app.Forecast.Generate(ctx, siteapp.ForecastRequest{ProjectID: p.ID, Now: &now})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatForecast(resp))
			return nil
		},
	}
}

func newOptimizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Suggest crew moves and shift extensions for items off pace",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			resp, err := app.Optimizer.Optimize(ctx, siteapp.OptimizeRequest{ProjectID: p.ID})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOptimize(resp))
			return nil
		},
	}
}
