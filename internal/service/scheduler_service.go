package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location, log *slog.Logger) *SchedulerService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	cronLog := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelWarn))
	return &SchedulerService{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
	}
}

// ScheduleDaily registers a daily job at the given HH:MM time string.
func (s *SchedulerService) ScheduleDaily(timeStr string, job func()) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.cron.AddFunc(spec, job)
}

// ScheduleInterval runs job every interval, rounded down to whole seconds.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval < time.Second {
		return 0, fmt.Errorf("reset interval %v is shorter than a second", interval)
	}
	return s.cron.Schedule(cron.Every(interval), cron.FuncJob(job)), nil
}

// Entries reports how many jobs are registered.
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}

// Start runs registered jobs in the background.
func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to return.
func (s *SchedulerService) Stop() {
	<-s.cron.Stop().Done()
}

// buildDailySpec turns a local "HH:MM" into a six-field cron spec.
func buildDailySpec(clock string) (string, error) {
	at, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return "", fmt.Errorf("daily time %q is not HH:MM: %w", clock, err)
	}
	return fmt.Sprintf("0 %d %d * * *", at.Minute(), at.Hour()), nil
}
