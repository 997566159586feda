package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zen-dashboard/internal/model"
)

// Slot names. They match the keys the browser version used so an exported
// localStorage dump can be imported unchanged.
const (
	TasksSlot       = "zen-dashboard-tasks"
	SubtrackersSlot = "zen-dashboard-subtrackers"
	HackathonsSlot  = "zen-dashboard-hackathons"
	CoursesSlot     = "zen-dashboard-courses"
	ProjectsSlot    = "zen-dashboard-projects"
	ContestsSlot    = "zen-dashboard-contests"
)

// SlotRepository is a key-value store of whole JSON snapshots.
type SlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Get returns the raw value stored under name. ok is false when the slot has
// never been written.
func (r *SlotRepository) Get(ctx context.Context, name string) (value string, ok bool, err error) {
	var slot model.Slot
	err = r.db.WithContext(ctx).Where("name = ?", name).First(&slot).Error
	switch {
	case err == nil:
		return slot.Value, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	default:
		return "", false, fmt.Errorf("get slot %s: %w", name, err)
	}
}

// Put overwrites the slot with value.
func (r *SlotRepository) Put(ctx context.Context, name, value string) error {
	slot := model.Slot{Name: name, Value: value}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&slot).Error
	if err != nil {
		return fmt.Errorf("put slot %s: %w", name, err)
	}
	return nil
}

// Snapshot returns every stored slot keyed by name.
func (r *SlotRepository) Snapshot(ctx context.Context) (map[string]string, error) {
	var slots []model.Slot
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	out := make(map[string]string, len(slots))
	for _, s := range slots {
		out[s.Name] = s.Value
	}
	return out, nil
}

func saveJSON(ctx context.Context, slots *SlotRepository, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return slots.Put(ctx, name, string(raw))
}

// loadJSON decodes the slot into a T. Stored content is trusted: a decode
// failure is returned as is, with no fallback to defaults.
func loadJSON[T any](ctx context.Context, slots *SlotRepository, name string) (T, bool, error) {
	var out T
	raw, ok, err := slots.Get(ctx, name)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, true, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, true, nil
}
