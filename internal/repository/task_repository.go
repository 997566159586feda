package repository

import (
	"context"

	"zen-dashboard/internal/model"
)

// TaskRepository persists the whole task list as one slot.
type TaskRepository struct {
	slots *SlotRepository
}

func NewTaskRepository(slots *SlotRepository) *TaskRepository {
	return &TaskRepository{slots: slots}
}

// Save overwrites the stored list with tasks.
func (r *TaskRepository) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return saveJSON(ctx, r.slots, TasksSlot, tasks)
}

// Load returns the stored list, or an empty list on first run.
func (r *TaskRepository) Load(ctx context.Context) ([]model.Task, error) {
	tasks, ok, err := loadJSON[[]model.Task](ctx, r.slots, TasksSlot)
	if err != nil {
		return nil, err
	}
	if !ok || tasks == nil {
		return []model.Task{}, nil
	}
	return tasks, nil
}
