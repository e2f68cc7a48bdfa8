package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	siteapp "github.com/alexanderramin/sitepace/internal/app"
	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/spf13/cobra"
)

func newBaselineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Freeze and compare schedule baselines",
	}

	cmd.AddCommand(
		newBaselineCreateCmd(app, "create", "Freeze current actuals into a new active baseline"),
		newBaselineCreateCmd(app, "rebaseline", "Replace the active baseline with a fresh snapshot"),
		newBaselineListCmd(app),
		newBaselineShowCmd(app),
		newBaselineCompareCmd(app),
	)

	return cmd
}

func newBaselineCreateCmd(app *App, use, short string) *cobra.Command {
	var name, notes string
	var yes bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			req := siteapp.CreateBaselineRequest{ProjectID: p.ID, Name: name, Notes: notes}

			var b *domain.Baseline
			if use == "rebaseline" {
				ok, err := confirm(app, yes,
					fmt.Sprintf("Rebaseline %s?", p.Code),
					"The current active baseline will be deactivated and kept for history.")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				b, err = app.Baselines.Rebaseline(ctx, req)
				if err != nil {
					return err
				}
			} else {
				b, err = app.Baselines.Create(ctx, req)
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created baseline v%d %q with %d snapshot(s)\n", b.Version, b.Name, len(b.Snapshots))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Baseline name")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	if use == "rebaseline" {
		cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	}
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBaselineListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List baselines, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			baselines, err := app.Baselines.List(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(baselines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No baselines yet. Freeze one with: sitepace baseline create --name NAME")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBaselineList(baselines))
			return nil
		},
	}
}

// resolveVersion parses "v3" or "3", or picks the active baseline when no
// argument is given.
func resolveVersion(ctx context.Context, app *App, projectID string, args []string) (int, error) {
	if len(args) > 0 {
		v, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(args[0]), "v"))
		if err != nil || v < 1 {
			return 0, domain.Invalid(domain.CodeBaselineInvalid, "invalid baseline version %q", args[0])
		}
		return v, nil
	}
	baselines, err := app.Baselines.List(ctx, projectID)
	if err != nil {
		return 0, err
	}
	for _, b := range baselines {
		if b.IsActive {
			return b.Version, nil
		}
	}
	return 0, domain.NotFound(domain.CodeBaselineNotFound, "project has no active baseline")
}

func newBaselineShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [VERSION]",
		Short: "Show a baseline's frozen plan (default: the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			version, err := resolveVersion(ctx, app, p.ID, args)
			if err != nil {
				return err
			}
			b, err := app.Baselines.Get(ctx, p.ID, version)
			if err != nil {
				return err
			}
			items, err := app.WBS.List(ctx, p.ID)
			if err != nil {
				return err
			}
			codes := make(map[string]string, len(items))
			for _, it := range items {
				codes[it.ID] = it.Code
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBaseline(b, codes))
			return nil
		},
	}
}

func newBaselineCompareCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [VERSION]",
		Short: "Compare a baseline's planned mandays against actuals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := requireProject(ctx, cmd, app)
			if err != nil {
				return err
			}
			version, err := resolveVersion(ctx, app, p.ID, args)
			if err != nil {
				return err
			}
			cmp, err := app.Baselines.Compare(ctx, p.ID, version)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatComparison(cmp))
			return nil
		},
	}
}
