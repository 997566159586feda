package bot

import (
	"strings"
	"testing"
	"time"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/service"
)

func TestNumberedTasksOrdersByCategory(t *testing.T) {
	tasks := []model.Task{
		{ID: "s1", Category: model.CategorySpiritual},
		{ID: "w1", Category: model.CategoryStudyWork},
		{ID: "h1", Category: model.CategoryHealth},
		{ID: "w2", Category: model.CategoryStudyWork},
	}
	got := numberedTasks(tasks)
	want := []string{"w1", "w2", "h1", "s1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
	if tasks[0].ID != "s1" {
		t.Fatal("input was reordered")
	}
}

func TestFormatDashboard(t *testing.T) {
	tasks := []model.Task{
		{Category: model.CategoryHealth, Priority: model.PriorityHigh},
		{Category: model.CategorySocial, Priority: model.PriorityLow, Completed: true},
	}
	out := formatDashboard(service.ComputeAll(tasks), "Keep going <now>")

	for _, want := range []string{
		"<i>Keep going &lt;now&gt;</i>",
		iconDanger + " 🩺 <b>Health</b> · 0/1 (high 0/1)",
		iconSuccess + " 🤝 <b>Social</b> · 1/1",
		iconSuccess + " 🎓 <b>Study/Work</b> · 0/0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatTaskList(t *testing.T) {
	tasks := []model.Task{
		{Name: "Pray", Category: model.CategorySpiritual, Priority: model.PriorityLow, Frequency: model.FrequencyDaily},
		{Name: "Ship <feature>", Category: model.CategoryStudyWork, Priority: model.PriorityHigh, Frequency: model.FrequencyOneTime, Completed: true},
	}

	t.Run("all categories", func(t *testing.T) {
		out := formatTaskList(tasks, "")
		if !strings.Contains(out, iconDone+" <b>1.</b> Ship &lt;feature&gt;") {
			t.Errorf("expected escaped first task, got:\n%s", out)
		}
		if !strings.Contains(out, iconOpen+" <b>2.</b> Pray") {
			t.Errorf("expected second task numbered 2, got:\n%s", out)
		}
	})

	t.Run("filtered keeps global numbering", func(t *testing.T) {
		out := formatTaskList(tasks, model.CategorySpiritual)
		if strings.Contains(out, "Ship") || !strings.Contains(out, "<b>2.</b> Pray") {
			t.Errorf("unexpected filtered output:\n%s", out)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if out := formatTaskList(nil, ""); !strings.Contains(out, "/newtask") {
			t.Errorf("expected hint, got %q", out)
		}
	})
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "▱▱▱▱"},
		{0.5, "▰▰▱▱"},
		{1, "▰▰▰▰"},
		{2, "▰▰▰▰"},
		{-1, "▱▱▱▱"},
	}
	for _, tt := range tests {
		if got := progressBar(tt.ratio, 4); got != tt.want {
			t.Errorf("progressBar(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}

func TestFormatTrackers(t *testing.T) {
	subs := formatSubtrackers([]model.Subtracker{{Name: "Curricular Learning", Progress: 2.5, Target: 10, Unit: "hours"}})
	if !strings.Contains(subs, "2.5/10 hours") {
		t.Errorf("unexpected subtracker output: %s", subs)
	}

	total := 3000
	when := time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC)
	contests := formatContests([]model.ContestTracker{
		{Platform: "Leetcode", QuestionsCompleted: 300, TotalQuestions: &total, LastUpdated: when},
		{Platform: "Codeforces", QuestionsCompleted: 12, LastUpdated: when},
	}, time.UTC)
	if !strings.Contains(contests, "Leetcode · 300/3000") || !strings.Contains(contests, "Codeforces · 12 questions · updated 2024-01-02") {
		t.Errorf("unexpected contest output: %s", contests)
	}

	items := formatTrackerItems(model.TrackerCourses, []model.TrackerItem{
		{Name: "Go", Deadline: "2024-09-01", Status: model.TrackerInProgress, Priority: model.TrackerPriorityHigh, EstimatedTime: "40 hours"},
	})
	if !strings.Contains(items, "<b>Courses</b>") || !strings.Contains(items, "⏳ Go · due 2024-09-01 · high · ~40 hours") {
		t.Errorf("unexpected items output: %s", items)
	}
}

func TestItemCallbackRoundTrip(t *testing.T) {
	id := "0f8fad5b-d9cb-469f-a165-70867728950e"
	data := itemCallback(model.TrackerHackathons, id, model.TrackerInProgress)
	if len(data) > 64 {
		t.Fatalf("callback data too long: %d bytes", len(data))
	}
	kind, gotID, status, err := parseItemCallback(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if kind != model.TrackerHackathons || gotID != id || status != model.TrackerInProgress {
		t.Fatalf("got %s %s %s", kind, gotID, status)
	}
	if _, _, _, err := parseItemCallback("item:courses:x:z"); err == nil {
		t.Fatal("expected error for unknown status code")
	}
}

func TestParseIndexValue(t *testing.T) {
	n, v, err := parseIndexValue(" 2  7.5 ")
	if err != nil || n != 2 || v != 7.5 {
		t.Fatalf("got %d %v %v", n, v, err)
	}
	for _, bad := range []string{"", "1", "0 3", "x 3", "1 y", "1 2 3"} {
		if _, _, err := parseIndexValue(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseIndexCount(t *testing.T) {
	n, c, err := parseIndexCount("1 120")
	if err != nil || n != 1 || c != 120 {
		t.Fatalf("got %d %d %v", n, c, err)
	}
	for _, bad := range []string{"1 12.7", "1 1e30", "1 99999999999999999999", "0 5", "1"} {
		if _, _, err := parseIndexCount(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestStripIcon(t *testing.T) {
	tests := map[string]string{
		"🎓 Study/Work": "Study/Work",
		"Health":       "Health",
		"🧘 Spiritual":  "Spiritual",
	}
	for in, want := range tests {
		if got := stripIcon(in); got != want {
			t.Errorf("stripIcon(%q) = %q, want %q", in, got, want)
		}
	}
}
