package desktop

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/idursun/wndkit/internal/ui/common"
	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/ui/render"
	"github.com/idursun/wndkit/internal/wnd"
)

const closeLabel = "[x]"

// Window is the host side bookkeeping of a desktop window. Position and
// Size follow the payloads of the chrome events.
type Window struct {
	ID       int
	Title    string
	Node     *node.Node
	TitleBar *node.Node
	Body     *node.Node
	Close    *node.Node
	Position wnd.Position
	Size     wnd.Size

	detachDrag   func()
	detachResize func()
}

func (m *Model) newWindow(title string, rect layout.Rectangle) *Window {
	m.nextID++
	w := &Window{ID: m.nextID, Title: title}
	w.Node = &node.Node{
		Name:  fmt.Sprintf("window-%d", w.ID),
		Class: "window",
		Rect:  rect,
		Z:     m.desk.MaxChildZ() + 1,
	}
	w.Node.Paint = func(width, height int) string {
		return m.paintWindow(w, width, height)
	}
	w.TitleBar, w.Body = node.CreateHorizontalSplitter(w.Node, m.titleBarHeight())
	w.Close = &node.Node{
		Name:  "close",
		Class: "close-button",
		Anchor: func(width, _ int) layout.Rectangle {
			return layout.Rect(width-len(closeLabel)-1, 0, len(closeLabel), 1)
		},
		Paint: func(int, int) string {
			return m.palette.Get("window close").Render(closeLabel)
		},
	}
	w.TitleBar.AppendChild(w.Close)
	w.Close.AddListener(node.MouseDown, func(e *node.Event) {
		e.StopPropagation()
	})
	w.Close.AddListener(node.Click, func(e *node.Event) {
		e.StopPropagation()
		m.closeWindow(w)
	})

	m.desk.AppendChild(w.Node)
	w.Position = wnd.Position{X: float64(rect.Min.X), Y: float64(rect.Min.Y)}
	w.Size = m.resizeOptions().LogicalSize(wnd.RectFrom(rect))
	w.detachDrag = wnd.EnableDrag(w.Node, w.TitleBar, m.bounds, m.chromeEvent(w))
	m.enableResize(w)

	m.windows = append(m.windows, w)
	m.focus(w)
	slog.Debug("window opened", "window", w.ID, "rect", rect)
	return w
}

func (m *Model) enableResize(w *Window) {
	if w.detachResize != nil {
		w.detachResize()
	}
	w.detachResize = wnd.EnableResize(w.Node, m.bounds, m.chromeEvent(w), m.keys, m.resizeOptions())
}

func (m *Model) closeWindow(w *Window) {
	idx := -1
	for i, candidate := range m.windows {
		if candidate == w {
			idx = i
		}
	}
	if idx < 0 {
		return
	}
	w.detachDrag()
	w.detachResize()
	w.Node.Remove()
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	if m.focused == w {
		m.focused = nil
		if n := len(m.windows); n > 0 {
			m.focus(m.windows[n-1])
		}
	}
	slog.Debug("window closed", "window", w.ID)
}

// focus raises w above its siblings.
func (m *Model) focus(w *Window) {
	if m.focused == w {
		return
	}
	m.focused = w
	if w == nil {
		return
	}
	if top := m.desk.MaxChildZ(); w.Node.Z != top || m.countZ(top) > 1 {
		w.Node.Z = top + 1
	}
}

func (m *Model) countZ(z int) int {
	count := 0
	for _, w := range m.windows {
		if w.Node.Z == z {
			count++
		}
	}
	return count
}

// cycleFocus raises the bottom window, so repeated calls visit every
// window.
func (m *Model) cycleFocus() {
	if len(m.windows) < 2 {
		return
	}
	ordered := m.desk.Children()
	if bottom := m.windowOf(ordered[0]); bottom != nil {
		m.focus(bottom)
	}
}

// windowOf returns the window n belongs to.
func (m *Model) windowOf(n *node.Node) *Window {
	for cur := n; cur != nil; cur = cur.Parent() {
		for _, w := range m.windows {
			if w.Node == cur {
				return w
			}
		}
	}
	return nil
}

func (m *Model) chromeEvent(w *Window) wnd.EventFunc {
	return func(e wnd.Event) {
		switch e.Kind {
		case wnd.DragMove:
			w.Position = e.Position
		case wnd.ResizeMove, wnd.ResizeEnd:
			w.Size = e.Size
			w.Position = wnd.Position{X: float64(w.Node.Rect.Min.X), Y: float64(w.Node.Rect.Min.Y)}
		}
		m.setStatus(describe(w, e))
		slog.Debug("chrome event", "window", w.ID, "kind", e.Kind.String(), "x", e.Position.X, "y", e.Position.Y, "width", e.Size.Width, "height", e.Size.Height)
	}
}

func describe(w *Window, e wnd.Event) string {
	switch e.Kind {
	case wnd.DragMove:
		return fmt.Sprintf("%s #%d → %g,%g", e.Kind, w.ID, e.Position.X, e.Position.Y)
	case wnd.ResizeMove, wnd.ResizeEnd:
		return fmt.Sprintf("%s #%d → %gx%g", e.Kind, w.ID, e.Size.Width, e.Size.Height)
	}
	return fmt.Sprintf("%s #%d", e.Kind, w.ID)
}

func (m *Model) paintWindow(w *Window, width, height int) string {
	selector := "window"
	if m.focused == w {
		selector = "window focused"
	}
	border := m.palette.Get(selector + " border")
	frame := render.Frame(width, height, w.Title, common.Border(m.cfg.UI.Border), border)
	if frame == "" {
		return ""
	}
	lines := strings.Split(frame, "\n")

	body := m.palette.Get("window body")
	content := []string{
		fmt.Sprintf("#%d at %g,%g", w.ID, w.Position.X, w.Position.Y),
		fmt.Sprintf("size %gx%g", w.Size.Width, w.Size.Height),
		"shift+drag edge: keep ratio",
	}
	inner := width - 2
	edges := common.Border(m.cfg.UI.Border)
	for i, text := range content {
		row := i + 1
		if row >= len(lines)-1 || inner <= 0 {
			break
		}
		text = ansi.Truncate(text, inner, "…")
		pad := strings.Repeat(" ", inner-ansi.StringWidth(text))
		lines[row] = border.Render(edges.Left) + body.Render(text+pad) + border.Render(edges.Right)
	}
	return strings.Join(lines, "\n")
}

// titleRect is the part of the top edge of a window at abs that holds its
// title, or an empty rectangle when the frame has no room for one.
func titleRect(title string, abs layout.Rectangle) layout.Rectangle {
	inner := abs.Dx() - 2
	if title == "" || inner <= 2 || abs.Dy() < 2 {
		return layout.Rectangle{}
	}
	width := min(ansi.StringWidth(" "+title+" "), inner)
	return layout.Rect(abs.Min.X+1, abs.Min.Y, width, 1)
}

// decorateWindow highlights the title of the focused window at the layer
// it was painted at, so windows above it still cover it.
func (m *Model) decorateWindow(dl *render.DisplayContext, n *node.Node, abs layout.Rectangle, z int) {
	if m.focused == nil || m.focused.Node != n {
		return
	}
	dl.AddHighlight(titleRect(m.focused.Title, abs), m.palette.Get("window focused title"), z)
}
