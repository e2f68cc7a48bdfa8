package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/spf13/cobra"
)

func newWBSCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Manage the work breakdown structure of a project",
	}

	cmd.AddCommand(
		newWBSListCmd(app),
		newWBSAddCmd(app),
		newWBSUpdateCmd(app),
		newWBSImportCmd(app),
		newWBSCheckCmd(app),
	)

	return cmd
}

func newWBSListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the WBS tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			items, err := app.WBS.List(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWBSList(p, items))
			return nil
		},
	}
}

// parentByCode looks up a parent in the same project. An empty code is a
// root item.
func parentByCode(ctx context.Context, app *App, projectID, code string) (*domain.WBSItem, error) {
	if code == "" {
		return nil, nil
	}
	return app.WBS.GetByCode(ctx, projectID, code)
}

func newWBSAddCmd(app *App) *cobra.Command {
	var code, name, parentCode, unit string
	var qty float64
	var summary bool
	var order int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a WBS item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			parent, err := parentByCode(ctx, app, p.ID, parentCode)
			if err != nil {
				return err
			}

			w := &domain.WBSItem{
				ProjectID: p.ID,
				Code:      code,
				Name:      name,
				Qty:       qty,
				Unit:      unit,
				SortOrder: order,
				IsSummary: summary,
			}
			if parent != nil {
				w.ParentID = &parent.ID
				w.Level = parent.Level + 1
			}
			if err := app.WBS.Create(ctx, w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (level %d)\n", w.Code, w.Name, w.Level)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "WBS code, e.g. 1.2.3")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&parentCode, "parent", "", "Parent WBS code")
	cmd.Flags().Float64Var(&qty, "qty", 0, "Planned quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of measure (default pcs)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Mark as a summary (grouping) item")
	cmd.Flags().IntVar(&order, "order", 0, "Sort order among siblings")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newWBSUpdateCmd(app *App) *cobra.Command {
	var name, parentCode, unit string
	var qty float64
	var summary bool

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Update a WBS item",
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
			if flags.Changed("name") {
				w.Name = name
			}
			if flags.Changed("qty") {
				w.Qty = qty
			}
			if flags.Changed("unit") {
				w.Unit = unit
			}
			if flags.Changed("summary") {
				w.IsSummary = summary
			}
			if flags.Changed("parent") {
				parent, err := parentByCode(ctx, app, p.ID, parentCode)
				if err != nil {
					return err
				}
				w.ParentID, w.Level = nil, 0
				if parent != nil {
					w.ParentID = &parent.ID
					w.Level = parent.Level + 1
				}
			}
			if err := app.WBS.Update(ctx, w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", w.Code, w.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&parentCode, "parent", "", "New parent WBS code (empty for root)")
	cmd.Flags().Float64Var(&qty, "qty", 0, "Planned quantity")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of measure")
	cmd.Flags().BoolVar(&summary, "summary", false, "Summary (grouping) item")

	return cmd
}

func newWBSImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import WBS items from a JSON or YAML file",
		Long: `Import WBS items from a .json, .yaml or .yml file of the form

  items:
    - code: "1"
      name: Structure
      is_summary: true
    - code: "1.1"
      name: Columns
      parent_code: "1"
      qty: 40
      unit: m3

Existing codes are updated in place. Invalid rows are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			res, err := app.WBS.ImportFile(ctx, p.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}

func newWBSCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report hierarchy problems such as orphans and empty summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			errs, err := app.WBS.CheckHierarchy(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHierarchyCheck(errs))
			return nil
		},
	}
}
