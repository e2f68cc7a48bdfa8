package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/sitepace/internal/cli/formatter"
	"github.com/alexanderramin/sitepace/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var code, name string
	var start, end dateValue

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Code:      strings.ToUpper(strings.TrimSpace(code)),
				Name:      name,
				StartDate: start.ptr(),
				EndDate:   end.ptr(),
				Status:    domain.ProjectActive,
			}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Project code, e.g. HSP-01")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(&end, "end", "Planned end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet. Create one with: sitepace project add --code CODE --name NAME")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show a project with its work breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			items, err := app.WBS.List(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectShow(p, items, app.now()))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, status string
	var start, end dateValue

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Update a project's name, dates or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Projects.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ProjectStatus(strings.ToLower(status))
			}
			if start.set {
				p.StartDate = start.ptr()
			}
			if end.set {
				p.EndDate = end.ptr()
			}
			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s [%s]\n", p.Name, p.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&status, "status", "", "active, paused, done or archived")
	cmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(&end, "end", "Planned end date (YYYY-MM-DD)")

	return cmd
}
