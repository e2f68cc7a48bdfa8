package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/sitepace/internal/cli"
	"github.com/alexanderramin/sitepace/internal/config"
	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/repository"
	"github.com/alexanderramin/sitepace/internal/retry"
	"github.com/alexanderramin/sitepace/internal/scheduler"
	"github.com/alexanderramin/sitepace/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.DescribeError(err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(config.DefaultPath())
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if cfg.Log.UseCases && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	observer := service.NewSlogUseCaseObserver(logger)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work for transactional operations
	repos := repository.NewSQLiteRepos(database)
	uow := db.NewSQLiteUnitOfWork(database)
	bind := service.TxRepos(repository.NewSQLiteRepos)

	policy := retry.DefaultPolicy()
	policy.MaxAttempts = cfg.Baseline.MaxAttempts
	policy.MinBackoff = cfg.Baseline.MinBackoff()
	policy.MaxBackoff = cfg.Baseline.MaxBackoff()

	forecast := service.ForecastSettings{
		WindowDays:   cfg.Forecast.RollingWindowDays,
		FallbackDays: cfg.Forecast.FallbackHorizonDays,
		Confidence:   cfg.Forecast.Confidence,
		Persist:      cfg.Forecast.Persist,
	}

	thresholds := scheduler.Thresholds{
		BehindSPI:      cfg.Optimizer.BehindSPI,
		AheadSPI:       cfg.Optimizer.AheadSPI,
		ExtendShiftSPI: cfg.Optimizer.ExtendShiftSPI,
		MaxSuggestions: cfg.Optimizer.MaxSuggestions,
	}

	app := &cli.App{
		Projects:    service.NewProjectService(repos.Projects),
		WBS:         service.NewWBSService(repos.Projects, repos.WBSItems, uow, bind, observer),
		Allocations: service.NewAllocationService(repos.Projects, repos.WBSItems, repos.Allocations, repos.ChatLogs, observer),
		Matrix:      service.NewMatrixService(repos.Projects, repos.WBSItems, repos.Allocations, repos.Baselines, observer),
		Baselines:   service.NewBaselineService(repos, uow, bind, policy, observer),
		Forecast:    service.NewForecastService(repos.Projects, repos.WBSItems, repos.Allocations, repos.Forecasts, forecast, observer),
		Optimizer:   service.NewOptimizerService(repos.Projects, repos.WBSItems, repos.Allocations, thresholds, observer),
		Digest:      service.NewDigestService(repos.Projects, repos.WBSItems, repos.Allocations, observer),
	}

	// Prompts only run on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
