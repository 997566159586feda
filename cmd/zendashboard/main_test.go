package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"zen-dashboard/internal/config"
	"zen-dashboard/internal/model"
	"zen-dashboard/internal/repository"
	"zen-dashboard/internal/service"
)

func newTestApp(t *testing.T) *app {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "cli.db"), nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	clock := func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	a := &app{
		cfg:   config.Config{Location: time.UTC},
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		db:    db,
		slots: repository.NewSlotRepository(db),
	}
	a.tasks = service.NewTaskService(repository.NewTaskRepository(a.slots), service.WithClock(clock))
	a.subtrackers = service.NewSubtrackerService(repository.NewSubtrackerRepository(a.slots))
	a.trackers = service.NewTrackerService(repository.NewTrackerRepository(a.slots, clock), clock)
	if _, err := a.tasks.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return a
}

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%s %v: %v", cmd.Name(), args, err)
	}
	return out.String()
}

func TestTaskAddAndStatus(t *testing.T) {
	a := newTestApp(t)

	out := run(t, taskCmd(a), "add", "Morning", "run", "-c", "health", "-p", "high", "-f", "daily")
	if !strings.Contains(out, "Added") {
		t.Fatalf("unexpected output: %q", out)
	}
	tasks := a.tasks.TasksIn(model.CategoryHealth)
	if len(tasks) != 1 || tasks[0].Name != "Morning run" || tasks[0].Frequency != model.FrequencyDaily {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}

	var statuses []model.CategoryStatus
	if err := json.Unmarshal([]byte(run(t, statusCmd(a), "--json")), &statuses); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	for _, st := range statuses {
		want := model.StatusSuccess
		if st.Category == model.CategoryHealth {
			want = model.StatusDanger
		}
		if st.Status != want {
			t.Errorf("%s: expected %s, got %s", st.Category, want, st.Status)
		}
	}

	run(t, taskCmd(a), "toggle", tasks[0].ID)
	if st := a.tasks.Status(model.CategoryHealth); st.Status != model.StatusSuccess {
		t.Fatalf("expected success after toggle, got %s", st.Status)
	}
}

func TestTaskAddRejectsUnknownCategory(t *testing.T) {
	a := newTestApp(t)
	cmd := taskCmd(a)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "x", "-c", "Leisure"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestTrackerAndContestCommands(t *testing.T) {
	a := newTestApp(t)

	run(t, trackerCmd(a), "add", "course", "2024-05-01", "Distributed", "Systems", "-e", "6 weeks")
	items, err := a.trackers.Items(context.Background(), model.TrackerCourses)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one course, got %+v (%v)", items, err)
	}
	run(t, trackerCmd(a), "status", "courses", items[0].ID, "in-progress")

	out := run(t, trackerCmd(a), "list", "courses")
	if !strings.Contains(out, "Distributed Systems") || !strings.Contains(out, "in-progress") {
		t.Fatalf("unexpected list: %q", out)
	}

	run(t, contestCmd(a), "set", "1", "150")
	out = run(t, contestCmd(a), "list")
	if !strings.Contains(out, "Leetcode") || !strings.Contains(out, "150/3000") {
		t.Fatalf("unexpected contests: %q", out)
	}

	run(t, subtrackerCmd(a), "set", "1", "12")
	subtrackers, err := a.subtrackers.List(context.Background())
	if err != nil {
		t.Fatalf("list subtrackers: %v", err)
	}
	if subtrackers[0].Progress != 12 {
		t.Fatalf("expected progress 12, got %v", subtrackers[0].Progress)
	}
}

func TestExportAndImport(t *testing.T) {
	src := newTestApp(t)
	if _, err := src.tasks.AddTask(context.Background(), service.TaskInput{Name: "Read", Category: model.CategorySocial}); err != nil {
		t.Fatalf("add: %v", err)
	}

	yamlOut := run(t, exportCmd(src))
	if !strings.Contains(yamlOut, repository.TasksSlot+":") || !strings.Contains(yamlOut, "name: Read") {
		t.Fatalf("unexpected yaml export: %q", yamlOut)
	}

	jsonOut := run(t, exportCmd(src), "--format", "json")
	dump := filepath.Join(t.TempDir(), "dump.json")
	if err := os.WriteFile(dump, []byte(jsonOut), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	dst := newTestApp(t)
	run(t, importCmd(dst), dump)
	raw, ok, err := dst.slots.Get(context.Background(), repository.TasksSlot)
	if err != nil || !ok {
		t.Fatalf("expected imported tasks slot (ok=%v, err=%v)", ok, err)
	}
	tasks, err := repository.NewTaskRepository(dst.slots).Load(context.Background())
	if err != nil {
		t.Fatalf("load imported: %v (%s)", err, raw)
	}
	if len(tasks) != 1 || tasks[0].Name != "Read" {
		t.Fatalf("unexpected imported tasks: %+v", tasks)
	}
}

func TestImportAcceptsStringValues(t *testing.T) {
	a := newTestApp(t)
	dump := filepath.Join(t.TempDir(), "local-storage.json")
	content := `{"zen-dashboard-tasks":"[{\"id\":\"1\",\"name\":\"Pray\",\"priority\":\"High\",\"frequency\":\"Daily\",\"completed\":false,\"createdAt\":\"2024-03-01T08:00:00.000Z\",\"category\":\"Spiritual\"}]","theme":"dark"}`
	if err := os.WriteFile(dump, []byte(content), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}

	out := run(t, importCmd(a), dump)
	if !strings.Contains(out, "Imported 1 slots") {
		t.Fatalf("unexpected output: %q", out)
	}
	tasks, err := repository.NewTaskRepository(a.slots).Load(context.Background())
	if err != nil || len(tasks) != 1 || tasks[0].Category != model.CategorySpiritual {
		t.Fatalf("unexpected tasks: %+v (%v)", tasks, err)
	}
}

func TestImportRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"object in tasks slot", `{"zen-dashboard-tasks":{"id":"1"}}`},
		{"string in contests slot", `{"zen-dashboard-contests":"\"nope\""}`},
		{"task outside categories", `{"zen-dashboard-tasks":[{"id":"1","name":"Nap","priority":"High","frequency":"Daily","category":"Leisure","createdAt":"2024-03-01T08:00:00Z"}]}`},
		{"not JSON", `{"zen-dashboard-courses":"[{"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			dump := filepath.Join(t.TempDir(), "dump.json")
			content := `{"zen-dashboard-projects":[{"id":"p1","name":"Site","deadline":"2024-06-01","status":"not-started","priority":"low"}],` + tt.content[1:]
			if err := os.WriteFile(dump, []byte(content), 0o644); err != nil {
				t.Fatalf("write dump: %v", err)
			}

			cmd := importCmd(a)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs([]string{dump})
			if err := cmd.ExecuteContext(context.Background()); err == nil {
				t.Fatal("expected import to fail")
			}

			for _, name := range knownSlots {
				if _, ok, err := a.slots.Get(context.Background(), name); err != nil || ok {
					t.Fatalf("slot %s written by a rejected import (ok=%v, err=%v)", name, ok, err)
				}
			}
			if _, err := a.tasks.Load(context.Background()); err != nil {
				t.Fatalf("store unusable after rejected import: %v", err)
			}
		})
	}
}

func TestCloseReportsShutdownErrors(t *testing.T) {
	a := newTestApp(t)
	flushErr := errors.New("exporter unavailable")
	a.shutdown = func(context.Context) error { return flushErr }

	err := a.close()
	if !errors.Is(err, flushErr) {
		t.Fatalf("expected shutdown error, got %v", err)
	}
	if sqlDB, _ := a.db.DB(); sqlDB.Ping() == nil {
		t.Fatal("expected database to be closed")
	}
}
