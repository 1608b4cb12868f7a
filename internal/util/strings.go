package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"strings"
)

// JoinWithEqualSpacing spreads items across width with equal gaps between them. If they do not fit, they are
// truncated from the right
func JoinWithEqualSpacing(width int, items ...string) string {
	if len(items) == 0 || width <= 0 {
		return ""
	}

	totalContentWidth := 0
	for _, item := range items {
		totalContentWidth += lipgloss.Width(item)
	}

	if totalContentWidth > width {
		var result strings.Builder
		remainingWidth := width
		for _, item := range items {
			itemWidth := lipgloss.Width(item)
			if remainingWidth <= 0 {
				break
			}
			if itemWidth > remainingWidth {
				result.WriteString(lipgloss.NewStyle().MaxWidth(remainingWidth).Render(item))
				break
			}
			result.WriteString(item)
			remainingWidth -= itemWidth
		}
		return result.String()
	}

	if len(items) == 1 {
		return items[0]
	}

	totalSpacing := width - totalContentWidth
	baseSpacing := totalSpacing / (len(items) - 1)
	extraSpacing := totalSpacing % (len(items) - 1)

	var result strings.Builder
	for i, item := range items {
		result.WriteString(item)
		if i < len(items)-1 {
			spaces := baseSpacing
			if i < extraSpacing {
				spaces++
			}
			result.WriteString(strings.Repeat(" ", spaces))
		}
	}
	return result.String()
}

// Truncate shortens unstyled s to at most width terminal cells, ending with tail if anything was cut off
func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if runewidth.StringWidth(tail) >= width {
		return runewidth.Truncate(tail, width, "")
	}
	return runewidth.Truncate(s, width, tail)
}

// PadRight pads unstyled s with spaces to width terminal cells
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
