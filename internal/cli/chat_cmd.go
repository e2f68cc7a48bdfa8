package cli

import (
	"context"
	"fmt"

	siteapp "github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/alexanderramin/sitepace/internal/importer"
	"github.com/spf13/cobra"
)

// chatFile holds actions already extracted from a chat message upstream.
type chatFile struct {
	Actions []siteapp.ChatAction `json:"actions" yaml:"actions"`
}

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Apply structured chat actions",
	}
	cmd.AddCommand(newChatApplyCmd(app))
	return cmd
}

func newChatApplyCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply chat actions from a JSON or YAML file",
		Long: `Apply chat actions addressed by wbs code:

  actions:
    - wbs_code: "1.1"
      date: 2026-02-17
      actual_manpower: 6
      qty_done: 12
      note: pour finished early

Cells are saved with source "chat" and the batch is logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			var f chatFile
			if err := importer.DecodeFile(args[0], &f); err != nil {
				return err
			}
			if len(f.Actions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No actions in file.")
				return nil
			}

			ok, err := confirm(app, yes,
				fmt.Sprintf("Apply %d chat action(s) to %s?", len(f.Actions), p.Code),
				"Actual manpower and quantities will be overwritten for the listed days.")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			res, err := app.Allocations.ApplyChatActions(ctx, p.ID, f.Actions)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatchResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
