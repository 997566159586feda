package service

import (
	"testing"
	"time"

	"zen-dashboard/internal/model"
)

func completedAt(freq model.Frequency, last time.Time) model.Task {
	return model.Task{Frequency: freq, Completed: true, LastCompleted: &last}
}

func TestShouldReset(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 1, 0, 1, 0, 0, loc)

	tests := []struct {
		name string
		task model.Task
		want bool
	}{
		{"daily across midnight", completedAt(model.FrequencyDaily, time.Date(2024, 2, 29, 23, 59, 0, 0, loc)), true},
		{"daily same day", completedAt(model.FrequencyDaily, time.Date(2024, 3, 1, 0, 0, 30, 0, loc)), false},
		{"daily same day last year", completedAt(model.FrequencyDaily, time.Date(2023, 3, 1, 0, 0, 30, 0, loc)), true},
		{"weekly six days ago", completedAt(model.FrequencyWeekly, now.Add(-6*24*time.Hour)), false},
		{"weekly exactly seven days", completedAt(model.FrequencyWeekly, now.Add(-7*24*time.Hour)), false},
		{"weekly eight days ago", completedAt(model.FrequencyWeekly, now.Add(-8*24*time.Hour)), true},
		{"monthly across month boundary", completedAt(model.FrequencyMonthly, time.Date(2024, 2, 29, 12, 0, 0, 0, loc)), true},
		{"monthly same month", completedAt(model.FrequencyMonthly, time.Date(2024, 3, 1, 0, 0, 0, 0, loc)), false},
		{"monthly same month previous year", completedAt(model.FrequencyMonthly, time.Date(2023, 3, 15, 0, 0, 0, 0, loc)), true},
		{"one-time never resets", completedAt(model.FrequencyOneTime, time.Date(2020, 1, 1, 0, 0, 0, 0, loc)), false},
		{"never completed", model.Task{Frequency: model.FrequencyDaily}, false},
		{"unknown frequency", completedAt(model.Frequency("Yearly"), time.Date(2020, 1, 1, 0, 0, 0, 0, loc)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldReset(tt.task, now); got != tt.want {
				t.Errorf("ShouldReset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldResetUsesNowLocation(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC on the 1st is 01:30 on the 2nd at UTC+3.
	last := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)
	task := completedAt(model.FrequencyDaily, last)

	if ShouldReset(task, time.Date(2024, 5, 2, 9, 0, 0, 0, plus3)) {
		t.Error("expected same calendar day in UTC+3")
	}
	if !ShouldReset(task, time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)) {
		t.Error("expected next calendar day in UTC")
	}
}

func TestResetStale(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tasks := []model.Task{
		{ID: "daily", Frequency: model.FrequencyDaily, Completed: true, LastCompleted: &yesterday},
		{ID: "weekly", Frequency: model.FrequencyWeekly, Completed: true, LastCompleted: &yesterday},
		{ID: "open", Frequency: model.FrequencyDaily, Completed: false, LastCompleted: &yesterday},
	}

	out, reset := ResetStale(tasks, now)
	if reset != 1 {
		t.Fatalf("expected 1 reset, got %d", reset)
	}
	if out[0].Completed || !out[1].Completed || out[2].Completed {
		t.Fatalf("unexpected completion flags: %+v", out)
	}
	if out[0].LastCompleted == nil || !out[0].LastCompleted.Equal(yesterday) {
		t.Fatal("expected lastCompleted to be kept")
	}
	if !tasks[0].Completed {
		t.Fatal("input was mutated")
	}
}
