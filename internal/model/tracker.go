package model

import (
	"fmt"
	"strings"
	"time"
)

// TrackerKind selects one of the goal lists on the tracker page.
type TrackerKind string

const (
	TrackerHackathons TrackerKind = "hackathons"
	TrackerCourses    TrackerKind = "courses"
	TrackerProjects   TrackerKind = "projects"
)

var trackerKinds = []TrackerKind{TrackerHackathons, TrackerCourses, TrackerProjects}

func TrackerKinds() []TrackerKind {
	out := make([]TrackerKind, len(trackerKinds))
	copy(out, trackerKinds)
	return out
}

// ParseTrackerKind accepts the plural or singular form ("course", "courses").
func ParseTrackerKind(raw string) (TrackerKind, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, k := range trackerKinds {
		if value == string(k) || value+"s" == string(k) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown tracker kind %q", raw)
}

// Title is the display heading of the list.
func (k TrackerKind) Title() string {
	switch k {
	case TrackerHackathons:
		return "Hackathons"
	case TrackerCourses:
		return "Courses"
	case TrackerProjects:
		return "Projects"
	}
	return string(k)
}

type TrackerStatus string

const (
	TrackerNotStarted TrackerStatus = "not-started"
	TrackerInProgress TrackerStatus = "in-progress"
	TrackerCompleted  TrackerStatus = "completed"
)

func ParseTrackerStatus(raw string) (TrackerStatus, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, "_", "-")
	value = strings.ReplaceAll(value, " ", "-")
	switch TrackerStatus(value) {
	case TrackerNotStarted, TrackerInProgress, TrackerCompleted:
		return TrackerStatus(value), nil
	}
	return "", fmt.Errorf("unknown tracker status %q", raw)
}

// TrackerPriority is lower-case on the tracker page, unlike task priority.
type TrackerPriority string

const (
	TrackerPriorityHigh   TrackerPriority = "high"
	TrackerPriorityMedium TrackerPriority = "medium"
	TrackerPriorityLow    TrackerPriority = "low"
)

func ParseTrackerPriority(raw string) (TrackerPriority, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch TrackerPriority(value) {
	case TrackerPriorityHigh, TrackerPriorityMedium, TrackerPriorityLow:
		return TrackerPriority(value), nil
	}
	return "", fmt.Errorf("unknown tracker priority %q", raw)
}

// TrackerItem is a hackathon, course or project with a deadline.
type TrackerItem struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name"`
	Deadline      string          `json:"deadline" yaml:"deadline"`
	EstimatedTime string          `json:"estimatedTime" yaml:"estimatedTime"`
	Status        TrackerStatus   `json:"status" yaml:"status"`
	Priority      TrackerPriority `json:"priority" yaml:"priority"`
}

// ContestTracker counts solved questions on a coding-contest platform.
type ContestTracker struct {
	ID                 string    `json:"id" yaml:"id"`
	Platform           string    `json:"platform" yaml:"platform"`
	QuestionsCompleted int       `json:"questionsCompleted" yaml:"questionsCompleted"`
	TotalQuestions     *int      `json:"totalQuestions,omitempty" yaml:"totalQuestions,omitempty"`
	LastUpdated        time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

// Ratio reports completion against TotalQuestions. ok is false when the
// platform has no known total.
func (c ContestTracker) Ratio() (ratio float64, ok bool) {
	if c.TotalQuestions == nil {
		return 0, false
	}
	return clampRatio(float64(c.QuestionsCompleted), float64(*c.TotalQuestions)), true
}
