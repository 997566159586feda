package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/service"
)

const (
	minCardWidth = 28
	maxCardTasks = 8
)

// Model is the terminal dashboard: one card per category in a 2x2 grid.
type Model struct {
	ctx   context.Context
	tasks *service.TaskService
	keys  KeyMap
	quote string

	categories []model.Category
	focus      int
	cursor     map[model.Category]int

	adding    bool
	input     textinput.Model
	priority  int
	frequency int

	width int
	err   error
}

func NewModel(ctx context.Context, tasks *service.TaskService, quote string) Model {
	ti := textinput.New()
	ti.Placeholder = "Task name..."
	ti.CharLimit = 120

	return Model{
		ctx:        ctx,
		tasks:      tasks,
		keys:       DefaultKeyMap(),
		quote:      quote,
		categories: model.Categories(),
		cursor:     make(map[model.Category]int),
		input:      ti,
		priority:   indexOf(model.Priorities(), model.PriorityMedium),
		frequency:  indexOf(model.Frequencies(), model.FrequencyOneTime),
	}
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) focused() model.Category {
	return m.categories[m.focus]
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	category := m.focused()
	tasks := m.tasks.TasksIn(category)

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.focus = (m.focus + len(m.categories) - 1) % len(m.categories)
	case key.Matches(msg, m.keys.Right):
		m.focus = (m.focus + 1) % len(m.categories)
	case key.Matches(msg, m.keys.Up):
		if m.cursor[category] > 0 {
			m.cursor[category]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[category] < len(tasks)-1 {
			m.cursor[category]++
		}
	case key.Matches(msg, m.keys.Toggle):
		if idx := m.cursor[category]; idx < len(tasks) {
			if _, err := m.tasks.ToggleTask(m.ctx, tasks[idx].ID); err != nil {
				m.err = err
			}
		}
	case key.Matches(msg, m.keys.Reset):
		if _, err := m.tasks.ResetStale(m.ctx); err != nil {
			m.err = err
		}
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.NextPriority):
		m.priority = (m.priority + 1) % len(model.Priorities())
		return m, nil
	case key.Matches(msg, m.keys.NextFrequency):
		m.frequency = (m.frequency + 1) % len(model.Frequencies())
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		task, err := m.tasks.AddTask(m.ctx, service.TaskInput{
			Name:      m.input.Value(),
			Priority:  model.Priorities()[m.priority],
			Frequency: model.Frequencies()[m.frequency],
			Category:  m.focused(),
		})
		if err != nil {
			m.err = err
			return m, nil
		}
		if task == nil {
			// Blank name: keep the form open, nothing is created.
			return m, nil
		}
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		m.cursor[task.Category] = len(m.tasks.TasksIn(task.Category)) - 1
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	if m.quote != "" {
		b.WriteString(QuoteStyle.Render("“" + m.quote + "”"))
		b.WriteByte('\n')
	}

	cardWidth := minCardWidth
	if m.width > 0 && (m.width/2)-4 > cardWidth {
		cardWidth = (m.width / 2) - 4
	}

	cards := make([]string, len(m.categories))
	for i, c := range m.categories {
		cards[i] = m.renderCard(c, i == m.focus, cardWidth)
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], cards[3])
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
	b.WriteByte('\n')

	if m.adding {
		b.WriteString(m.renderForm())
		b.WriteByte('\n')
	}
	if m.err != nil {
		b.WriteString(ErrorStyle.Render("error: " + m.err.Error()))
		b.WriteByte('\n')
	}
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderCard(c model.Category, focused bool, width int) string {
	st := m.tasks.Status(c)
	tasks := m.tasks.TasksIn(c)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s\n",
		statusDot(st.Status), CardTitleStyle.Render(string(c)), CountStyle.Render(fmt.Sprintf("%d/%d", st.Completed, st.Total))))

	if len(tasks) == 0 {
		b.WriteString(MetaStyle.Render("no tasks"))
	}
	cursor := m.cursor[c]
	start := 0
	if cursor >= maxCardTasks {
		start = cursor - maxCardTasks + 1
	}
	for i := start; i < len(tasks) && i < start+maxCardTasks; i++ {
		t := tasks[i]
		check := "[ ]"
		name := t.Name
		if t.Completed {
			check = "[x]"
			name = DoneTaskStyle.Render(name)
		}
		line := fmt.Sprintf("%s %s %s %s", check, name, priorityDot(t.Priority), MetaStyle.Render(string(t.Frequency)))
		if focused && i == cursor {
			line = SelectedTaskStyle.Render("›") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(tasks)-1 {
			b.WriteByte('\n')
		}
	}

	style := CardStyle
	if focused {
		style = FocusedCardStyle
	}
	return style.Width(width).Render(b.String())
}

func (m Model) renderForm() string {
	lines := []string{
		fmt.Sprintf("New task in %s", m.focused()),
		m.input.View(),
		MetaStyle.Render(fmt.Sprintf("priority: %s · frequency: %s",
			model.Priorities()[m.priority], model.Frequencies()[m.frequency])),
	}
	return FormStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHelp() string {
	var bindings []key.Binding
	if m.adding {
		bindings = []key.Binding{m.keys.Submit, m.keys.Cancel, m.keys.NextPriority, m.keys.NextFrequency}
	} else {
		bindings = []key.Binding{m.keys.Left, m.keys.Right, m.keys.Up, m.keys.Down, m.keys.Toggle, m.keys.Add, m.keys.Reset, m.keys.Quit}
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return HelpStyle.Render(strings.Join(parts, " · "))
}
