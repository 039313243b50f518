package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matheuskafuri/headlines/internal/guardian"
)

func renderListItem(a guardian.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	title := a.Title
	if title == "" {
		title = "(untitled)"
	}
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(title, width-2))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(title, width-2))
	}

	var meta []string
	for _, part := range []string{a.Section, a.Author, oneLineDate(a.Date)} {
		if part != "" {
			meta = append(meta, part)
		}
	}

	return title + "\n  " + itemMetaStyle.Render(truncateStr(strings.Join(meta, " · "), width-2))
}

// oneLineDate flattens the two-line display date for list rows.
func oneLineDate(date string) string {
	return strings.ReplaceAll(date, "\n", " ")
}

// truncateStr cuts s to n terminal cells, so wide characters count twice.
func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= n {
		return s
	}
	if n <= 3 {
		return runewidth.Truncate(s, n, "")
	}
	return runewidth.Truncate(s, n, "...")
}

func renderList(articles []guardian.Article, cursor int, height int, width int) string {
	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start, end := visibleRange(len(articles), cursor, visible)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// visibleRange returns the window [start, end) that keeps cursor on screen.
func visibleRange(total, cursor, visible int) (int, int) {
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > total {
		end = total
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - runewidth.StringWidth(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
