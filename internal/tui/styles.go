package tui

import (
	"github.com/charmbracelet/lipgloss"

	"zen-dashboard/internal/model"
)

var (
	ColorFgPrimary = lipgloss.Color("#ABB2BF")
	ColorFgMuted   = lipgloss.Color("#636B78")
	ColorRed       = lipgloss.Color("#E06C75")
	ColorGreen     = lipgloss.Color("#98C379")
	ColorYellow    = lipgloss.Color("#E5C07B")
	ColorBlue      = lipgloss.Color("#61AFEF")
	ColorMagenta   = lipgloss.Color("#C678DD")
	ColorBorder    = lipgloss.Color("#3F4451")
)

var (
	QuoteStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Italic(true).
			PaddingLeft(1).
			MarginBottom(1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FocusedCardStyle = CardStyle.
				BorderForeground(ColorMagenta)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	DoneTaskStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Strikethrough(true)

	SelectedTaskStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	FormStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorYellow).
			PaddingLeft(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

func statusDot(s model.Status) string {
	color := ColorGreen
	switch s {
	case model.StatusDanger:
		color = ColorRed
	case model.StatusWarning:
		color = ColorYellow
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

func priorityDot(p model.Priority) string {
	color := ColorYellow
	switch p {
	case model.PriorityHigh:
		color = ColorRed
	case model.PriorityLow:
		color = ColorGreen
	}
	return lipgloss.NewStyle().Foreground(color).Render("•")
}
