package repository

import (
	"context"

	"zen-dashboard/internal/model"
)

// DefaultSubtrackers is returned when nothing has been stored yet.
func DefaultSubtrackers() []model.Subtracker {
	return []model.Subtracker{
		{ID: "1", Name: "Curricular Learning", Progress: 0, Target: 10, Unit: "hours"},
		{ID: "2", Name: "Hackathons", Progress: 0, Target: 2, Unit: "events"},
		{ID: "3", Name: "Extracurriculars", Progress: 0, Target: 5, Unit: "activities"},
	}
}

type SubtrackerRepository struct {
	slots *SlotRepository
}

func NewSubtrackerRepository(slots *SlotRepository) *SubtrackerRepository {
	return &SubtrackerRepository{slots: slots}
}

func (r *SubtrackerRepository) Save(ctx context.Context, subtrackers []model.Subtracker) error {
	if subtrackers == nil {
		subtrackers = []model.Subtracker{}
	}
	return saveJSON(ctx, r.slots, SubtrackersSlot, subtrackers)
}

// Load returns the stored list or the seed. The seed is not written back.
func (r *SubtrackerRepository) Load(ctx context.Context) ([]model.Subtracker, error) {
	subtrackers, ok, err := loadJSON[[]model.Subtracker](ctx, r.slots, SubtrackersSlot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultSubtrackers(), nil
	}
	if subtrackers == nil {
		return []model.Subtracker{}, nil
	}
	return subtrackers, nil
}
