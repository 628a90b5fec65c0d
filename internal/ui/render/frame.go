package render

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Frame renders a box of width x height cells outlined with border. A
// non-empty title is written into the top edge and cut to fit.
func Frame(width, height int, title string, border lipgloss.Border, style lipgloss.Style) string {
	if width < 2 || height < 2 {
		return ""
	}
	inner := width - 2
	top := strings.Repeat(border.Top, inner)
	if title != "" && inner > 2 {
		title = ansi.Truncate(" "+title+" ", inner, "…")
		top = title + strings.Repeat(border.Top, inner-ansi.StringWidth(title))
	}

	lines := make([]string, 0, height)
	lines = append(lines, style.Render(border.TopLeft+top+border.TopRight))
	middle := style.Render(border.Left + strings.Repeat(" ", inner) + border.Right)
	for range height - 2 {
		lines = append(lines, middle)
	}
	lines = append(lines, style.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return strings.Join(lines, "\n")
}
