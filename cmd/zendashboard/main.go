package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"zen-dashboard/internal/config"
	"zen-dashboard/internal/logging"
	"zen-dashboard/internal/repository"
	"zen-dashboard/internal/service"
)

var Version = "dev"

// app is the composition root shared by every subcommand.
type app struct {
	cfg      config.Config
	log      *slog.Logger
	shutdown logging.ShutdownFunc
	db       *gorm.DB

	slots       *repository.SlotRepository
	tasks       *service.TaskService
	subtrackers *service.SubtrackerService
	trackers    *service.TrackerService
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "zendashboard",
		Short:         "Personal dashboard for recurring tasks and long-running goals",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	rootCmd.AddCommand(statusCmd(a))
	rootCmd.AddCommand(taskCmd(a))
	rootCmd.AddCommand(subtrackerCmd(a))
	rootCmd.AddCommand(trackerCmd(a))
	rootCmd.AddCommand(contestCmd(a))
	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(importCmd(a))
	rootCmd.AddCommand(botCmd(a))
	rootCmd.AddCommand(tuiCmd(a))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// open loads config, opens storage and runs the load-time reset pass.
func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, shutdown, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.log, a.shutdown = log, shutdown

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	a.db = db

	clock := func() time.Time { return time.Now().In(cfg.Location) }
	a.slots = repository.NewSlotRepository(db)
	a.tasks = service.NewTaskService(repository.NewTaskRepository(a.slots),
		service.WithClock(clock), service.WithLogger(log))
	a.subtrackers = service.NewSubtrackerService(repository.NewSubtrackerRepository(a.slots))
	a.trackers = service.NewTrackerService(repository.NewTrackerRepository(a.slots, clock), clock)

	if _, err := a.tasks.Load(ctx); err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("close db: %w", err))
		}
	}
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown logging: %w", err))
		}
	}
	return errors.Join(errs...)
}
