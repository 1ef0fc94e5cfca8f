package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	badgeHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	badgeMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badgeLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	suggestionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// badge renders a confidence label with its conventional color.
func badge(label string) string {
	switch label {
	case "high":
		return badgeHigh.Render("high")
	case "medium":
		return badgeMedium.Render("medium")
	default:
		return badgeLow.Render("low")
	}
}
