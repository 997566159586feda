package service

import (
	"time"

	"zen-dashboard/internal/model"
)

const weekWindow = 7 * 24 * time.Hour

// ShouldReset reports whether a completed recurring task has started a new
// cycle since it was last completed. Daily and Monthly follow calendar
// boundaries in now's location; Weekly is a rolling seven-day window.
func ShouldReset(task model.Task, now time.Time) bool {
	if task.Frequency == model.FrequencyOneTime || task.LastCompleted == nil {
		return false
	}

	last := task.LastCompleted.In(now.Location())
	switch task.Frequency {
	case model.FrequencyDaily:
		ny, nm, nd := now.Date()
		ly, lm, ld := last.Date()
		return ny != ly || nm != lm || nd != ld
	case model.FrequencyWeekly:
		return last.Before(now.Add(-weekWindow))
	case model.FrequencyMonthly:
		return now.Year() != last.Year() || now.Month() != last.Month()
	default:
		return false
	}
}

// ResetStale returns a copy of tasks with every stale completed task marked
// incomplete, and how many were changed. LastCompleted is kept.
func ResetStale(tasks []model.Task, now time.Time) ([]model.Task, int) {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	reset := 0
	for i := range out {
		if out[i].Completed && ShouldReset(out[i], now) {
			out[i].Completed = false
			reset++
		}
	}
	return out, reset
}
