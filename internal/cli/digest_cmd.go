package cli

import (
	"context"
	"fmt"

	siteapp "github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/spf13/cobra"
)

func newDigestCmd(app *App) *cobra.Command {
	var date dateValue

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Summarize one day on site against the day before",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			day := date.or(domain.Today(app.now()))
			resp, err := app.Digest.Digest(ctx, siteapp.DigestRequest{ProjectID: p.ID, Date: &day})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDigest(resp))
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Day to summarize (YYYY-MM-DD, default today)")
	return cmd
}
