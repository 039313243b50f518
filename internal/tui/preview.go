package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/headlines/internal/guardian"
)

func renderPreview(article *guardian.Article, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := article.Title
	if title == "" {
		title = "(untitled)"
	}
	parts := []string{previewTitleStyle.Width(contentWidth).Render(title)}

	if article.Section != "" {
		parts = append(parts, previewSectionStyle.Render(article.Section))
	}
	if article.Author != "" {
		parts = append(parts, previewBodyStyle.Width(contentWidth).Render("By "+article.Author))
	}
	if article.Date != "" {
		parts = append(parts, previewDateStyle.Render(article.Date))
	}

	link := "(No link available)"
	if article.URL != "" {
		link = "Read more: " + article.URL
	}
	parts = append(parts, previewLinkStyle.Width(contentWidth).Render(link))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}
