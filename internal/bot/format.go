package bot

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"zen-dashboard/internal/model"
)

const (
	iconSuccess = "🟢"
	iconWarning = "🟡"
	iconDanger  = "🔴"
	iconDone    = "✅"
	iconOpen    = "⬜"
)

func escape(s string) string {
	return html.EscapeString(s)
}

func statusIcon(s model.Status) string {
	switch s {
	case model.StatusDanger:
		return iconDanger
	case model.StatusWarning:
		return iconWarning
	default:
		return iconSuccess
	}
}

func categoryIcon(c model.Category) string {
	switch c {
	case model.CategoryStudyWork:
		return "🎓"
	case model.CategoryHealth:
		return "🩺"
	case model.CategorySocial:
		return "🤝"
	case model.CategorySpiritual:
		return "🧘"
	}
	return "🏷️"
}

func priorityIcon(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "🔺"
	case model.PriorityLow:
		return "🔹"
	default:
		return "🔸"
	}
}

// numberedTasks orders tasks the way /tasks prints them: by category, then
// creation order. /toggle numbers refer to this order.
func numberedTasks(tasks []model.Task) []model.Task {
	rank := make(map[model.Category]int)
	for i, c := range model.Categories() {
		rank[c] = i
	}
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[out[i].Category] < rank[out[j].Category]
	})
	return out
}

func formatDashboard(statuses []model.CategoryStatus, quote string) string {
	var b strings.Builder
	if quote != "" {
		b.WriteString(fmt.Sprintf("💬 <i>%s</i>\n\n", escape(quote)))
	}
	b.WriteString("📊 <b>Dashboard</b>\n")
	for _, st := range statuses {
		b.WriteString(fmt.Sprintf("%s %s <b>%s</b> · %d/%d",
			statusIcon(st.Status), categoryIcon(st.Category), escape(string(st.Category)), st.Completed, st.Total))
		if st.HighPriorityTotal > 0 {
			b.WriteString(fmt.Sprintf(" (high %d/%d)", st.HighPriorityCompleted, st.HighPriorityTotal))
		}
		b.WriteByte('\n')
	}
	return strings.TrimSpace(b.String())
}

// formatTaskList renders tasks grouped by category. When only is set, other
// categories are skipped but numbering still follows the full list.
func formatTaskList(tasks []model.Task, only model.Category) string {
	ordered := numberedTasks(tasks)
	var b strings.Builder
	b.WriteString("📋 <b>Tasks</b>\n")
	b.WriteString("Tap a button or send /toggle &lt;n&gt; to mark a task done or open.\n")

	shown := 0
	var current model.Category
	for i, task := range ordered {
		if only != "" && task.Category != only {
			continue
		}
		if task.Category != current {
			current = task.Category
			b.WriteString(fmt.Sprintf("\n%s <b>%s</b>\n", categoryIcon(current), escape(string(current))))
		}
		b.WriteString(formatTask(i+1, task))
		shown++
	}
	if shown == 0 {
		return "No tasks yet. Add one with /newtask."
	}
	return strings.TrimSpace(b.String())
}

func formatTask(n int, task model.Task) string {
	check := iconOpen
	if task.Completed {
		check = iconDone
	}
	return fmt.Sprintf("%s <b>%d.</b> %s %s <i>%s</i>\n",
		check, n, escape(strings.TrimSpace(task.Name)), priorityIcon(task.Priority), escape(string(task.Frequency)))
}

func progressBar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func formatSubtrackers(subtrackers []model.Subtracker) string {
	var b strings.Builder
	b.WriteString("📈 <b>Progress trackers</b>\n")
	if len(subtrackers) == 0 {
		b.WriteString("— none\n")
	}
	for i, st := range subtrackers {
		b.WriteString(fmt.Sprintf("<b>%d.</b> %s %s %s/%s %s\n",
			i+1, escape(st.Name), progressBar(st.Ratio(), 10),
			formatNumber(st.Progress), formatNumber(st.Target), escape(st.Unit)))
	}
	return b.String()
}

func formatContests(contests []model.ContestTracker, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("💻 <b>Contest tracker</b>\n")
	for i, c := range contests {
		b.WriteString(fmt.Sprintf("<b>%d.</b> %s · %d", i+1, escape(c.Platform), c.QuestionsCompleted))
		if c.TotalQuestions != nil {
			ratio, _ := c.Ratio()
			b.WriteString(fmt.Sprintf("/%d %s", *c.TotalQuestions, progressBar(ratio, 10)))
		}
		b.WriteString(fmt.Sprintf(" questions · updated %s\n", c.LastUpdated.In(loc).Format("2006-01-02")))
	}
	return b.String()
}

func trackerStatusIcon(s model.TrackerStatus) string {
	switch s {
	case model.TrackerCompleted:
		return iconDone
	case model.TrackerInProgress:
		return "⏳"
	default:
		return iconOpen
	}
}

func formatTrackerItems(kind model.TrackerKind, items []model.TrackerItem) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s</b>\n", escape(kind.Title())))
	if len(items) == 0 {
		b.WriteString("— nothing yet\n")
		return b.String()
	}
	for _, it := range items {
		b.WriteString(fmt.Sprintf("%s %s · due %s · %s", trackerStatusIcon(it.Status), escape(it.Name), escape(it.Deadline), escape(string(it.Priority))))
		if it.EstimatedTime != "" {
			b.WriteString(fmt.Sprintf(" · ~%s", escape(it.EstimatedTime)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func shortTitle(title string, maxLen int) string {
	clean := strings.TrimSpace(strings.ReplaceAll(title, "\n", " "))
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
