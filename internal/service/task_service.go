package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidTask  = errors.New("invalid task")
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Name      string
	Priority  model.Priority
	Frequency model.Frequency
	Category  model.Category
}

// TaskService owns the in-memory task list. Every mutation updates memory
// first and then writes the full list back to storage.
type TaskService struct {
	repo  *repository.TaskRepository
	log   *slog.Logger
	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	tasks []model.Task
}

type TaskServiceOption func(*TaskService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *TaskService) { s.now = now }
}

func WithIDGenerator(newID func() string) TaskServiceOption {
	return func(s *TaskService) { s.newID = newID }
}

func WithLogger(log *slog.Logger) TaskServiceOption {
	return func(s *TaskService) { s.log = log }
}

func NewTaskService(repo *repository.TaskRepository, opts ...TaskServiceOption) *TaskService {
	s := &TaskService{
		repo:  repo,
		log:   slog.Default(),
		now:   time.Now,
		newID: uuid.NewString,
		tasks: []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the stored list, reopens tasks whose cycle has elapsed, writes
// the result back and keeps it in memory. It returns how many were reopened.
func (s *TaskService) Load(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}
	tasks, reset := ResetStale(stored, s.now())
	s.tasks = tasks
	if err := s.repo.Save(ctx, s.tasks); err != nil {
		return reset, err
	}
	s.log.Info("tasks loaded", "count", len(tasks), "reset", reset)
	return reset, nil
}

// ResetStale reruns the load-time reset pass on the in-memory list. Storage
// is only written when something changed.
func (s *TaskService) ResetStale(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, reset := ResetStale(s.tasks, s.now())
	if reset == 0 {
		return 0, nil
	}
	s.tasks = tasks
	if err := s.repo.Save(ctx, s.tasks); err != nil {
		return reset, err
	}
	s.log.Info("recurring tasks reopened", "reset", reset)
	return reset, nil
}

// AddTask creates a task. A blank name is ignored: nil is returned for both
// the task and the error. Category, priority and frequency must come from
// their closed sets.
func (s *TaskService) AddTask(ctx context.Context, input TaskInput) (*model.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, nil
	}
	if input.Priority == "" {
		input.Priority = model.PriorityMedium
	}
	if input.Frequency == "" {
		input.Frequency = model.FrequencyOneTime
	}
	switch {
	case !input.Category.Valid():
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidTask, input.Category)
	case !input.Priority.Valid():
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, input.Priority)
	case !input.Frequency.Valid():
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidTask, input.Frequency)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := model.Task{
		ID:        s.newID(),
		Name:      input.Name,
		Priority:  input.Priority,
		Frequency: input.Frequency,
		Category:  input.Category,
		CreatedAt: s.now().UTC(),
	}
	s.tasks = append(s.tasks, task)
	if err := s.repo.Save(ctx, s.tasks); err != nil {
		return nil, err
	}
	s.log.Debug("task created", "id", task.ID, "category", task.Category, "frequency", task.Frequency)
	return &task, nil
}

// ToggleTask flips completion. Completing stamps LastCompleted; reopening by
// hand leaves it as it was.
func (s *TaskService) ToggleTask(ctx context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.Completed = !task.Completed
	if task.Completed {
		now := s.now().UTC()
		task.LastCompleted = &now
	}
	s.tasks[idx] = task
	if err := s.repo.Save(ctx, s.tasks); err != nil {
		return nil, err
	}
	s.log.Debug("task toggled", "id", task.ID, "completed", task.Completed)
	return &task, nil
}

// Tasks returns a copy of the current list.
func (s *TaskService) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// TasksIn returns the tasks of one category in creation order.
func (s *TaskService) TasksIn(category model.Category) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Task
	for _, t := range s.tasks {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

func (s *TaskService) Status(category model.Category) model.CategoryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStatus(s.tasks, category)
}

func (s *TaskService) Statuses() []model.CategoryStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeAll(s.tasks)
}
