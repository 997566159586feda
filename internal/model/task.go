package model

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func Priorities() []Priority {
	out := make([]Priority, len(priorities))
	copy(out, priorities)
	return out
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

func ParsePriority(raw string) (Priority, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, p := range priorities {
		if strings.ToLower(string(p)) == value {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown priority %q", raw)
}

// Frequency controls when a completed task is reopened.
type Frequency string

const (
	FrequencyOneTime Frequency = "One-time"
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

var frequencies = []Frequency{FrequencyOneTime, FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

func Frequencies() []Frequency {
	out := make([]Frequency, len(frequencies))
	copy(out, frequencies)
	return out
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOneTime, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

func ParseFrequency(raw string) (Frequency, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "once" || value == "onetime" || value == "one_time" {
		return FrequencyOneTime, nil
	}
	for _, f := range frequencies {
		if strings.ToLower(string(f)) == value {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency %q", raw)
}

// Task represents a single item on the dashboard.
type Task struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Priority      Priority   `json:"priority" yaml:"priority"`
	Frequency     Frequency  `json:"frequency" yaml:"frequency"`
	Completed     bool       `json:"completed" yaml:"completed"`
	CreatedAt     time.Time  `json:"createdAt" yaml:"createdAt"`
	LastCompleted *time.Time `json:"lastCompleted,omitempty" yaml:"lastCompleted,omitempty"`
	Category      Category   `json:"category" yaml:"category"`
}
