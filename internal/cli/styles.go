package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Underline(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Width(22)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true).
			PaddingLeft(4)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
