package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"})
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"})
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"})

	taskTitleStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"})

	lockOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#11111b"}).
			Background(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
)

var priorityStyles = map[string]lipgloss.Style{
	"high":   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}),
	"medium": lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}),
	"low":    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}),
}

func priorityLabel(p string) string {
	if st, ok := priorityStyles[p]; ok {
		return st.Render(p)
	}
	return p
}
