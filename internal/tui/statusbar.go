package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(articleCount int, width int, editing bool, loading bool) string {
	left := fmt.Sprintf(" %d articles", articleCount)
	if articleCount == 1 {
		left = " 1 article"
	}
	if loading {
		left += " (loading...)"
	}

	right := " / keyword  s sort  r reload  ? help  q quit "
	if editing {
		right = " esc cancel  enter search "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
