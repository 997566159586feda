package repository

import (
	"context"
	"fmt"
	"time"

	"zen-dashboard/internal/model"
)

// TrackerRepository stores the tracker page lists, one slot per kind plus the
// contest counters.
type TrackerRepository struct {
	slots *SlotRepository
	now   func() time.Time
}

func NewTrackerRepository(slots *SlotRepository, now func() time.Time) *TrackerRepository {
	if now == nil {
		now = time.Now
	}
	return &TrackerRepository{slots: slots, now: now}
}

func itemsSlot(kind model.TrackerKind) (string, error) {
	switch kind {
	case model.TrackerHackathons:
		return HackathonsSlot, nil
	case model.TrackerCourses:
		return CoursesSlot, nil
	case model.TrackerProjects:
		return ProjectsSlot, nil
	}
	return "", fmt.Errorf("unknown tracker kind %q", kind)
}

func (r *TrackerRepository) SaveItems(ctx context.Context, kind model.TrackerKind, items []model.TrackerItem) error {
	name, err := itemsSlot(kind)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.TrackerItem{}
	}
	return saveJSON(ctx, r.slots, name, items)
}

func (r *TrackerRepository) LoadItems(ctx context.Context, kind model.TrackerKind) ([]model.TrackerItem, error) {
	name, err := itemsSlot(kind)
	if err != nil {
		return nil, err
	}
	items, ok, err := loadJSON[[]model.TrackerItem](ctx, r.slots, name)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []model.TrackerItem{}, nil
	}
	return items, nil
}

func (r *TrackerRepository) SaveContests(ctx context.Context, contests []model.ContestTracker) error {
	if contests == nil {
		contests = []model.ContestTracker{}
	}
	return saveJSON(ctx, r.slots, ContestsSlot, contests)
}

// LoadContests returns the stored counters. On first run the default
// platforms are written to the slot before being returned.
func (r *TrackerRepository) LoadContests(ctx context.Context) ([]model.ContestTracker, error) {
	contests, ok, err := loadJSON[[]model.ContestTracker](ctx, r.slots, ContestsSlot)
	if err != nil {
		return nil, err
	}
	if ok {
		if contests == nil {
			return []model.ContestTracker{}, nil
		}
		return contests, nil
	}

	seed := DefaultContests(r.now().UTC())
	if err := r.SaveContests(ctx, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// DefaultContests lists the platforms tracked out of the box.
func DefaultContests(now time.Time) []model.ContestTracker {
	leetcodeTotal := 3000
	return []model.ContestTracker{
		{ID: "1", Platform: "Leetcode", TotalQuestions: &leetcodeTotal, LastUpdated: now},
		{ID: "2", Platform: "Codechef", LastUpdated: now},
		{ID: "3", Platform: "Codeforces", LastUpdated: now},
		{ID: "4", Platform: "HackerRank", LastUpdated: now},
	}
}
