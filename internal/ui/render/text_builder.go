package render

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/idursun/wndkit/internal/ui/layout"
)

// TextBuilder lays out styled segments on a single row.
type TextBuilder struct {
	dl       *DisplayContext
	segments []textSegment
	x        int
	y        int
	z        int
	maxX     int
}

type textSegment struct {
	text  string
	style lipgloss.Style
}

// Text starts a row at (x, y). Segments past maxX are cut; maxX <= 0 means
// unlimited.
func (dl *DisplayContext) Text(x, y, z, maxX int) *TextBuilder {
	return &TextBuilder{dl: dl, x: x, y: y, z: z, maxX: maxX}
}

func (tb *TextBuilder) Write(text string) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text})
	return tb
}

func (tb *TextBuilder) Styled(text string, style lipgloss.Style) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text, style: style})
	return tb
}

// Done queues the segments and returns the column after the last one.
func (tb *TextBuilder) Done() int {
	x := tb.x
	for _, seg := range tb.segments {
		text := seg.text
		width := ansi.StringWidth(text)
		if width == 0 {
			continue
		}
		if tb.maxX > 0 && x+width > tb.maxX {
			width = tb.maxX - x
			if width <= 0 {
				break
			}
			text = ansi.Truncate(text, width, "")
		}
		tb.dl.AddDraw(layout.Rect(x, tb.y, width, 1), seg.style.Render(text), tb.z)
		x += width
	}
	return x
}
