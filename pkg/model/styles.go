package model

import (
	"github.com/byxorna/doclib/pkg/ui"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(ui.Fuchsia)

	headerStyle      = ui.TitleStyle
	descriptionStyle = ui.SubtleStyle.Italic(true)
	collectionStyle  = lipgloss.NewStyle().Foreground(ui.Indigo)

	toolbarKeyStyle   = lipgloss.NewStyle().Foreground(ui.Fuchsia).Bold(true)
	toolbarLabelStyle = lipgloss.NewStyle().Foreground(ui.Normal)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.Indigo).
			Padding(0, 1)
	menuSelectedStyle = lipgloss.NewStyle().Foreground(ui.Fuchsia).Bold(true)

	statusErrorStyle = ui.ErrorStyle
	statusStyle      = ui.StatusStyle
	countStyle       = ui.SubtleStyle

	appStyle = lipgloss.NewStyle().Padding(0, 1)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.Gray).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.Cream).
		Background(ui.Indigo).
		Bold(false)
	return s
}
