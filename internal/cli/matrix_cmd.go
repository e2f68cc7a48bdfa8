package cli

import (
	"context"
	"fmt"

	siteapp "github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/spf13/cobra"
)

const (
	matrixDaysBack    = 6
	matrixDaysForward = 7
)

func newMatrixCmd(app *App) *cobra.Command {
	var from, to dateValue

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Show the daily manpower grid with progress per item",
		Long: `Show planned/actual workers per item and day. Planned values come
from the active baseline when one exists. Defaults to the last week and the
week ahead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			now := app.now()
			today := domain.Today(now)
			resp, err := app.Matrix.DailyMatrix(ctx, siteapp.MatrixRequest{
				ProjectID: p.ID,
				From:      from.or(today.AddDate(0, 0, -matrixDaysBack)),
				To:        to.or(today.AddDate(0, 0, matrixDaysForward)),
				Now:       &now,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMatrix(resp))
			return nil
		},
	}

	cmd.Flags().Var(&from, "from", "First day (YYYY-MM-DD)")
	cmd.Flags().Var(&to, "to", "Last day (YYYY-MM-DD)")

	return cmd
}
