package cli

import (
	"context"
	"fmt"

	siteapp "github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/alexanderramin/sitepace/internal/importer"
	"github.com/spf13/cobra"
)

// allocFile is the on-disk form of a grid batch. Rows name items by code.
type allocFile struct {
	Updates []allocRow `json:"updates" yaml:"updates"`
}

type allocRow struct {
	WBSCode         string   `json:"wbs_code" yaml:"wbs_code"`
	Date            string   `json:"date" yaml:"date"`
	PlannedManpower *float64 `json:"planned_manpower,omitempty" yaml:"planned_manpower,omitempty"`
	ActualManpower  *float64 `json:"actual_manpower,omitempty" yaml:"actual_manpower,omitempty"`
	QtyDone         *float64 `json:"qty_done,omitempty" yaml:"qty_done,omitempty"`
	Notes           *string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func newAllocCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alloc",
		Short: "Record daily manpower and quantities",
	}

	cmd.AddCommand(
		newAllocSetCmd(app),
		newAllocApplyCmd(app),
	)

	return cmd
}

func newAllocSetCmd(app *App) *cobra.Command {
	var date dateValue
	var notes string

	cmd := &cobra.Command{
		Use:   "set CODE",
		Short: "Set one grid cell; omitted fields keep their stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			w, err := app.WBS.GetByCode(ctx, p.ID, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			u := siteapp.CellUpdate{WBSItemID: w.ID, Date: domain.FormatDate(date.or(app.now()))}
			u.PlannedManpower = optionalFloat(flags, "planned")
			u.ActualManpower = optionalFloat(flags, "actual")
			u.QtyDone = optionalFloat(flags, "qty")
			if flags.Changed("notes") {
				u.Notes = &notes
			}

			res, err := app.Allocations.BatchUpdate(ctx, p.ID, []siteapp.CellUpdate{u}, domain.SourceGrid)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatchResult(res))
			return nil
		},
	}

	cmd.Flags().Var(&date, "date", "Work date (YYYY-MM-DD, default today)")
	cmd.Flags().Float64("planned", 0, "Planned workers")
	cmd.Flags().Float64("actual", 0, "Actual workers")
	cmd.Flags().Float64("qty", 0, "Quantity completed that day")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text note")

	return cmd
}

func newAllocApplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a batch of grid cells from a JSON or YAML file",
		Long: `Apply a batch of grid cells. The file lists updates by wbs code:

  updates:
    - wbs_code: "1.1"
      date: 2026-02-17
      actual_manpower: 6
      qty_done: 12

Valid cells are saved even when others are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			var f allocFile
			if err := importer.DecodeFile(args[0], &f); err != nil {
				return err
			}

			items, err := app.WBS.List(ctx, p.ID)
			if err != nil {
				return err
			}
			ids := make(map[string]string, len(items))
			for _, it := range items {
				ids[it.Code] = it.ID
			}

			var unknown []siteapp.ItemError
			updates := make([]siteapp.CellUpdate, 0, len(f.Updates))
			for i, r := range f.Updates {
				id, ok := ids[r.WBSCode]
				if !ok {
					ie := siteapp.NewItemError(domain.NotFound(domain.CodeWBSNotFound, "wbs code %q not found", r.WBSCode))
					ie.Row, ie.WBSCode, ie.Date = i, r.WBSCode, r.Date
					unknown = append(unknown, ie)
					continue
				}
				updates = append(updates, siteapp.CellUpdate{
					WBSItemID:       id,
					Date:            r.Date,
					PlannedManpower: r.PlannedManpower,
					ActualManpower:  r.ActualManpower,
					QtyDone:         r.QtyDone,
					Notes:           r.Notes,
				})
			}

			res, err := app.Allocations.BatchUpdate(ctx, p.ID, updates, domain.SourceGrid)
			if err != nil {
				return err
			}
			res.Errors = append(unknown, res.Errors...)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBatchResult(res))
			return nil
		},
	}
}
