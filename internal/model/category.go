package model

import (
	"fmt"
	"strings"
)

// Category is one of the four fixed life areas a task belongs to.
type Category string

const (
	CategoryStudyWork Category = "Study/Work"
	CategoryHealth    Category = "Health"
	CategorySocial    Category = "Social"
	CategorySpiritual Category = "Spiritual"
)

var categories = []Category{CategoryStudyWork, CategoryHealth, CategorySocial, CategorySpiritual}

// Categories returns the categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	switch c {
	case CategoryStudyWork, CategoryHealth, CategorySocial, CategorySpiritual:
		return true
	}
	return false
}

// ParseCategory accepts the canonical name in any case. "study", "work" and
// "study-work" are accepted as shortcuts for Study/Work.
func ParseCategory(raw string) (Category, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "study", "work", "study-work", "study_work":
		return CategoryStudyWork, nil
	}
	for _, c := range categories {
		if strings.ToLower(string(c)) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", raw)
}

// Status is the traffic-light health of a category.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// CategoryStatus is derived from the live task list and never stored.
type CategoryStatus struct {
	Category              Category `json:"category" yaml:"category"`
	Total                 int      `json:"total" yaml:"total"`
	Completed             int      `json:"completed" yaml:"completed"`
	HighPriorityTotal     int      `json:"highPriorityTotal" yaml:"highPriorityTotal"`
	HighPriorityCompleted int      `json:"highPriorityCompleted" yaml:"highPriorityCompleted"`
	Status                Status   `json:"status" yaml:"status"`
}
