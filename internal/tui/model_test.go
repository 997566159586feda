package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/repository"
	"zen-dashboard/internal/service"
)

func newTestModel(t *testing.T) (Model, *service.TaskService) {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "tui.db"), nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	svc := service.NewTaskService(repository.NewTaskRepository(repository.NewSlotRepository(db)))
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewModel(context.Background(), svc, "Keep going."), svc
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m = send(m, runes(string(r)))
	}
	return m
}

func TestAddTaskThroughForm(t *testing.T) {
	m, svc := newTestModel(t)

	m = send(m, runes("l")) // focus Health
	m = send(m, runes("a"))
	if !m.adding {
		t.Fatal("expected add form to open")
	}
	m = typeText(m, "Stretch")
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}) // Medium -> Low
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab}) // One-time -> Weekly
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.adding {
		t.Fatal("expected form to close after submit")
	}
	tasks := svc.TasksIn(model.CategoryHealth)
	if len(tasks) != 1 {
		t.Fatalf("expected one Health task, got %+v", svc.Tasks())
	}
	got := tasks[0]
	if got.Name != "Stretch" || got.Priority != model.PriorityLow || got.Frequency != model.FrequencyWeekly {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestBlankNameKeepsFormOpen(t *testing.T) {
	m, svc := newTestModel(t)
	m = send(m, runes("a"), runes(" "), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.adding {
		t.Fatal("expected form to stay open")
	}
	if len(svc.Tasks()) != 0 {
		t.Fatal("expected no task for a blank name")
	}
	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.adding {
		t.Fatal("expected esc to close the form")
	}
}

func TestToggleAndNavigate(t *testing.T) {
	m, svc := newTestModel(t)
	ctx := context.Background()
	for _, name := range []string{"Essay", "Lab report"} {
		if _, err := svc.AddTask(ctx, service.TaskInput{Name: name, Category: model.CategoryStudyWork, Priority: model.PriorityHigh}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	m = send(m, runes("j"), runes(" "))
	tasks := svc.TasksIn(model.CategoryStudyWork)
	if tasks[0].Completed || !tasks[1].Completed {
		t.Fatalf("expected second task toggled, got %+v", tasks)
	}
	if st := svc.Status(model.CategoryStudyWork); st.Status != model.StatusWarning {
		t.Fatalf("expected warning, got %s", st.Status)
	}

	view := m.View()
	for _, want := range []string{"Keep going.", "Study/Work", "1/2", "Essay", "Spiritual"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}
