package render

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	columnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#374151")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7C3AED"))

	priorityColors = map[string]lipgloss.Color{
		"Baja":    lipgloss.Color("#10B981"),
		"Media":   lipgloss.Color("#06B6D4"),
		"Alta":    lipgloss.Color("#F59E0B"),
		"Urgente": lipgloss.Color("#EF4444"),
	}
)

// Title renders a section header.
func Title(s string) string { return titleStyle.Render(s) }

// Muted renders secondary text.
func Muted(s string) string { return mutedStyle.Render(s) }

// Error renders an error line.
func Error(s string) string { return errorStyle.Render(s) }

func priority(label string) string {
	c, ok := priorityColors[label]
	if !ok {
		return label
	}
	return lipgloss.NewStyle().Foreground(c).Render(label)
}
