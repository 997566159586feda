package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/repository"
)

var ErrItemNotFound = errors.New("tracker item not found")

const deadlineLayout = "2006-01-02"

// TrackerItemInput is the add form of the tracker page.
type TrackerItemInput struct {
	Name          string
	Deadline      string
	EstimatedTime string
	Priority      model.TrackerPriority
}

// TrackerService manages hackathons, courses, projects and contest counters.
// Each call reads the slot, changes it and writes it back.
type TrackerService struct {
	repo  *repository.TrackerRepository
	now   func() time.Time
	newID func() string
}

func NewTrackerService(repo *repository.TrackerRepository, now func() time.Time) *TrackerService {
	if now == nil {
		now = time.Now
	}
	return &TrackerService{repo: repo, now: now, newID: uuid.NewString}
}

func (s *TrackerService) Items(ctx context.Context, kind model.TrackerKind) ([]model.TrackerItem, error) {
	return s.repo.LoadItems(ctx, kind)
}

// AddItem appends a new not-started item. Name and deadline are required; a
// blank one makes the call a no-op that returns nil, nil.
func (s *TrackerService) AddItem(ctx context.Context, kind model.TrackerKind, input TrackerItemInput) (*model.TrackerItem, error) {
	name := strings.TrimSpace(input.Name)
	deadline := strings.TrimSpace(input.Deadline)
	if name == "" || deadline == "" {
		return nil, nil
	}
	if _, err := time.Parse(deadlineLayout, deadline); err != nil {
		return nil, fmt.Errorf("deadline %q must look like 2025-11-30", deadline)
	}
	if input.Priority == "" {
		input.Priority = model.TrackerPriorityMedium
	}

	items, err := s.repo.LoadItems(ctx, kind)
	if err != nil {
		return nil, err
	}
	item := model.TrackerItem{
		ID:            s.newID(),
		Name:          name,
		Deadline:      deadline,
		EstimatedTime: strings.TrimSpace(input.EstimatedTime),
		Status:        model.TrackerNotStarted,
		Priority:      input.Priority,
	}
	items = append(items, item)
	if err := s.repo.SaveItems(ctx, kind, items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *TrackerService) SetItemStatus(ctx context.Context, kind model.TrackerKind, id string, status model.TrackerStatus) (*model.TrackerItem, error) {
	items, err := s.repo.LoadItems(ctx, kind)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Status = status
		if err := s.repo.SaveItems(ctx, kind, items); err != nil {
			return nil, err
		}
		item := items[i]
		return &item, nil
	}
	return nil, ErrItemNotFound
}

func (s *TrackerService) Contests(ctx context.Context) ([]model.ContestTracker, error) {
	return s.repo.LoadContests(ctx)
}

// SetContestProgress records the solved-question count for a platform.
// Negative counts are stored as zero.
func (s *TrackerService) SetContestProgress(ctx context.Context, id string, completed int) (*model.ContestTracker, error) {
	if completed < 0 {
		completed = 0
	}
	contests, err := s.repo.LoadContests(ctx)
	if err != nil {
		return nil, err
	}
	for i := range contests {
		if contests[i].ID != id {
			continue
		}
		contests[i].QuestionsCompleted = completed
		contests[i].LastUpdated = s.now().UTC()
		if err := s.repo.SaveContests(ctx, contests); err != nil {
			return nil, err
		}
		contest := contests[i]
		return &contest, nil
	}
	return nil, ErrItemNotFound
}

// SubtrackerService updates the dashboard progress bars.
type SubtrackerService struct {
	repo *repository.SubtrackerRepository
}

func NewSubtrackerService(repo *repository.SubtrackerRepository) *SubtrackerService {
	return &SubtrackerService{repo: repo}
}

func (s *SubtrackerService) List(ctx context.Context) ([]model.Subtracker, error) {
	return s.repo.Load(ctx)
}

// SetProgress stores a new progress value; negative values become zero.
func (s *SubtrackerService) SetProgress(ctx context.Context, id string, progress float64) (*model.Subtracker, error) {
	if progress < 0 {
		progress = 0
	}
	subtrackers, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range subtrackers {
		if subtrackers[i].ID != id {
			continue
		}
		subtrackers[i].Progress = progress
		if err := s.repo.Save(ctx, subtrackers); err != nil {
			return nil, err
		}
		st := subtrackers[i]
		return &st, nil
	}
	return nil, ErrItemNotFound
}
