package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#38BDF8"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	missStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

// Status markers used by report and doctor output.
var (
	okMarker   = okStyle.Render("[ OK ]")
	warnMarker = warnStyle.Render("[WARN]")
	missMarker = missStyle.Render("[MISS]")
)
