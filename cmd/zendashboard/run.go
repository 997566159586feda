package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"zen-dashboard/internal/bot"
	"zen-dashboard/internal/service"
	"zen-dashboard/internal/tui"
)

func botCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireBot(); err != nil {
				return err
			}
			ctx := cmd.Context()

			scheduler, err := a.startResetJobs(ctx)
			if err != nil {
				return err
			}
			defer scheduler.Stop()

			b, err := bot.New(a.cfg.TelegramToken, a.cfg.TelegramOwnerID, a.tasks, a.subtrackers, a.trackers, a.log, a.cfg.Location)
			if err != nil {
				return fmt.Errorf("bot: %w", err)
			}
			a.log.Info("bot started")
			if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.log.Info("shutdown")
			return nil
		},
	}
}

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			scheduler, err := a.startResetJobs(ctx)
			if err != nil {
				return err
			}
			defer scheduler.Stop()

			p := tea.NewProgram(tui.NewModel(ctx, a.tasks, service.RandomQuote()),
				tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

// startResetJobs reruns the recurrence reset on a fixed interval and once a
// day at the configured time.
func (a *app) startResetJobs(ctx context.Context) (*service.SchedulerService, error) {
	scheduler := service.NewSchedulerService(a.cfg.Location, a.log)
	job := func() {
		if _, err := a.tasks.ResetStale(ctx); err != nil {
			a.log.Error("reset pass", "err", err)
		}
	}

	if _, err := scheduler.ScheduleInterval(a.cfg.ResetInterval, job); err != nil {
		return nil, fmt.Errorf("schedule reset interval: %w", err)
	}
	if _, err := scheduler.ScheduleDaily(a.cfg.ResetAt, job); err != nil {
		return nil, fmt.Errorf("schedule daily reset: %w", err)
	}
	scheduler.Start()
	return scheduler, nil
}
