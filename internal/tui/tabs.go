package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/headlines/internal/guardian"
)

// renderOrderTabs shows the sort orders with the active one highlighted.
func renderOrderTabs(active guardian.SortOrder, width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	var row string
	for i, o := range guardian.SortOrders {
		style := tabInactiveStyle
		if o == active {
			style = tabActiveStyle
		}
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += style.Render(string(o))
		// Stop when we'd exceed width
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
