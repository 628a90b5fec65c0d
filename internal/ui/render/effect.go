package render

import (
	"image/color"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/idursun/wndkit/internal/ui/layout"
)

// Effect restyles cells that earlier operations drew.
type Effect interface {
	Apply(buf uv.Screen)
	GetZ() int
	GetRect() layout.Rectangle
}

// AttrEffect adds text attributes such as uv.AttrReverse to the cells.
type AttrEffect struct {
	Rect  layout.Rectangle
	Attrs uint8
	Z     int
}

func (e AttrEffect) Apply(buf uv.Screen) {
	restyle(buf, e.Rect, func(s *uv.Style) bool {
		s.Attrs |= e.Attrs
		return true
	})
}

func (e AttrEffect) GetZ() int                 { return e.Z }
func (e AttrEffect) GetRect() layout.Rectangle { return e.Rect }

// BackgroundEffect sets the background of the cells. Unless Force is set,
// a cell with its own background is left alone.
type BackgroundEffect struct {
	Rect  layout.Rectangle
	Color color.Color
	Force bool
	Z     int
}

func (e BackgroundEffect) Apply(buf uv.Screen) {
	bg := toAnsiColor(e.Color)
	if bg == nil {
		return
	}
	restyle(buf, e.Rect, func(s *uv.Style) bool {
		if s.Bg != nil && !e.Force {
			return false
		}
		s.Bg = bg
		return true
	})
}

func (e BackgroundEffect) GetZ() int                 { return e.Z }
func (e BackgroundEffect) GetRect() layout.Rectangle { return e.Rect }

// FillEffect overwrites every cell of Rect.
type FillEffect struct {
	Rect  layout.Rectangle
	Char  rune
	Style uv.Style
	Z     int
}

func (e FillEffect) Apply(buf uv.Screen) {
	cell := &uv.Cell{Content: string(e.Char), Width: 1, Style: e.Style}
	area := e.Rect.Intersect(buf.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			buf.SetCell(x, y, cell)
		}
	}
}

func (e FillEffect) GetZ() int                 { return e.Z }
func (e FillEffect) GetRect() layout.Rectangle { return e.Rect }

// toAnsiColor passes palette colors through unchanged, so they are not
// emitted as 24-bit RGB. An unset color yields nil.
func toAnsiColor(c color.Color) ansi.Color {
	if _, unset := c.(lipgloss.NoColor); unset || c == nil {
		return nil
	}
	return c
}

func lipglossToStyle(ls lipgloss.Style) uv.Style {
	s := uv.Style{
		Fg: toAnsiColor(ls.GetForeground()),
		Bg: toAnsiColor(ls.GetBackground()),
	}
	flags := []struct {
		on   bool
		attr uint8
	}{
		{ls.GetBold(), uv.AttrBold},
		{ls.GetFaint(), uv.AttrFaint},
		{ls.GetItalic(), uv.AttrItalic},
		{ls.GetStrikethrough(), uv.AttrStrikethrough},
		{ls.GetReverse(), uv.AttrReverse},
	}
	for _, f := range flags {
		if f.on {
			s.Attrs |= f.attr
		}
	}
	if ls.GetUnderline() {
		s.Underline = uv.UnderlineSingle
	}
	return s
}

// restyle hands a copy of the style of every cell in rect to change and
// writes the cell back when change reports true. Wide graphemes are visited
// once; their continuation cells are skipped.
func restyle(buf uv.Screen, rect layout.Rectangle, change func(*uv.Style) bool) {
	area := rect.Intersect(buf.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; {
			cell := buf.CellAt(x, y)
			if cell == nil || cell.Width == 0 {
				x++
				continue
			}
			next := cell.Clone()
			if change(&next.Style) {
				buf.SetCell(x, y, next)
			}
			x += max(cell.Width, 1)
		}
	}
}
