package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#8BC34A")
	mutedColor  = lipgloss.Color("#71717b")
	dangerColor = lipgloss.Color("#ff6b6b")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle  = lipgloss.NewStyle().Foreground(dangerColor)
	bodyStyle   = lipgloss.NewStyle().PaddingLeft(2)
)

// renderTable lays rows out in padded columns under a header line.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}

	var sb strings.Builder
	line := func(cells []string, style lipgloss.Style) {
		parts := make([]string, len(widths))
		for i := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			parts[i] = pad(c, widths[i])
		}
		sb.WriteString(style.Render(strings.TrimRight(strings.Join(parts, "  "), " ")))
		sb.WriteByte('\n')
	}

	line(headers, titleStyle)
	for _, r := range rows {
		line(r, lipgloss.NewStyle())
	}
	return sb.String()
}
