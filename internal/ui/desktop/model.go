// Package desktop hosts windows in the terminal. It owns the element tree,
// turns bubbletea input into tree events and keeps per-window bookkeeping
// from the chrome events.
package desktop

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idursun/wndkit/internal/config"
	"github.com/idursun/wndkit/internal/ui/common"
	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/ui/pointer"
	"github.com/idursun/wndkit/internal/ui/render"
	"github.com/idursun/wndkit/internal/wnd"
)

const (
	statusTimeout = 3 * time.Second
	zMenuBar      = 10
	zDesk         = 0
)

type clearStatusMsg struct{}

type Model struct {
	cfg     *config.Config
	palette *common.Palette
	keyMap  KeyMap
	keys    *pointer.Keys

	doc     *node.Node
	menubar *node.Node
	desk    *node.Node
	status  *node.Node

	windows []*Window
	focused *Window
	nextID  int

	menu      *wnd.Submenu
	menuOwner string

	cornerOnly  bool
	quitting    bool
	pressTarget *node.Node
	statusText  string
	statusDirty bool
	hoverCursor string

	width  int
	height int
	dl     *render.DisplayContext
}

func New(cfg *config.Config, palette *common.Palette) *Model {
	m := &Model{
		cfg:        cfg,
		palette:    palette,
		keyMap:     NewKeyMap(cfg.Keys),
		keys:       pointer.NewKeys(),
		cornerOnly: cfg.Resize.CornerOnly,
		dl:         render.NewDisplayContext(),
	}
	m.doc = node.NewDocument(0, 0)
	m.desk = &node.Node{Name: "desk", Class: "desk", Z: zDesk}
	m.desk.Paint = func(w, h int) string {
		return blank(w, h, m.palette.Get("desktop"))
	}
	m.status = &node.Node{Name: "status", Class: "status", Z: zMenuBar}
	m.status.Paint = m.paintStatus
	m.doc.AppendChild(m.desk)
	m.doc.AppendChild(m.status)
	m.menubar = m.newMenuBar()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Windows returns the open windows in opening order.
func (m *Model) Windows() []*Window {
	return m.windows
}

func (m *Model) Focused() *Window {
	return m.focused
}

// Document returns the root of the element tree.
func (m *Model) Document() *node.Node {
	return m.doc
}

func (m *Model) StatusText() string {
	return m.statusText
}

func (m *Model) titleBarHeight() int {
	return max(m.cfg.Window.TitleBarHeight, 1)
}

func (m *Model) resizeOptions() wnd.ResizeOptions {
	r := m.cfg.Resize
	return wnd.ResizeOptions{
		MinWidth:       float64(r.MinWidth),
		MinHeight:      float64(r.MinHeight),
		CornerOnly:     m.cornerOnly,
		HandleWidth:    r.HandleWidth,
		TitleBarHeight: float64(m.titleBarHeight()),
		AspectRatio:    r.AspectRatio,
	}
}

func (m *Model) bounds() wnd.Viewport {
	return wnd.Viewport{Width: float64(m.desk.Rect.Dx()), Height: float64(m.desk.Rect.Dy())}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.statusDirty = false
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
	case tea.MouseClickMsg:
		m.handleMouse(node.MouseDown, msg.Mouse())
	case tea.MouseMotionMsg:
		m.handleMouse(node.MouseMove, msg.Mouse())
	case tea.MouseReleaseMsg:
		m.handleMouse(node.MouseUp, msg.Mouse())
	case tea.KeyPressMsg:
		cmd = m.handleKeyPress(msg)
	case tea.KeyReleaseMsg:
		m.handleKeyRelease(msg)
	case clearStatusMsg:
		m.statusText = ""
	}
	if m.quitting {
		return m, tea.Quit
	}
	if m.statusDirty {
		cmd = tea.Batch(cmd, common.Debounce("status", statusTimeout, func() tea.Msg {
			return clearStatusMsg{}
		}))
	}
	return m, cmd
}

func (m *Model) setStatus(text string) {
	m.statusText = text
	m.statusDirty = true
}

func (m *Model) setSize(width, height int) {
	m.width, m.height = width, height
	m.doc.SetRect(layout.Rect(0, 0, width, height))
	bar, rest := layout.SplitHorizontal(m.doc.Rect, 1)
	desk, status := layout.SplitHorizontal(rest, rest.Dy()-1)
	m.menubar.SetRect(bar)
	m.desk.SetRect(desk)
	m.status.SetRect(status)

	// keep every window reachable after the terminal shrank
	vp := m.bounds()
	for _, w := range m.windows {
		r := w.Node.Rect
		x := min(r.Min.X, max(int(vp.Width)-r.Dx(), 0))
		y := min(r.Min.Y, max(int(vp.Height)-r.Dy(), 0))
		w.Node.MoveTo(x, y)
		w.Position = wnd.Position{X: float64(x), Y: float64(y)}
	}
	if len(m.windows) == 0 && m.nextID == 0 {
		m.OpenWindow("Welcome")
	}
}

// OpenWindow opens a window cascaded from the previous one.
func (m *Model) OpenWindow(title string) *Window {
	w := max(min(m.cfg.Window.DefaultWidth, m.desk.Rect.Dx()), 1)
	h := max(min(m.cfg.Window.DefaultHeight, m.desk.Rect.Dy()), 1)
	step := max(m.cfg.Window.Cascade, 0)
	x := 2 + (m.nextID*step)%max(m.desk.Rect.Dx()-w-1, 1)
	y := 1 + (m.nextID*step/2)%max(m.desk.Rect.Dy()-h-1, 1)
	return m.newWindow(title, layout.Rect(x, y, w, h))
}

func buttonOf(b tea.MouseButton) node.Button {
	switch b {
	case tea.MouseLeft:
		return node.ButtonPrimary
	case tea.MouseMiddle:
		return node.ButtonAuxiliary
	case tea.MouseRight:
		return node.ButtonSecondary
	}
	return node.ButtonNone
}

func (m *Model) handleMouse(typ node.EventType, mouse tea.Mouse) {
	m.syncShift(mouse.Mod.Contains(tea.ModShift))

	e := &node.Event{Type: typ, X: mouse.X, Y: mouse.Y, Button: buttonOf(mouse.Button)}
	target := m.doc.HitTest(mouse.X, mouse.Y)
	switch typ {
	case node.MouseDown:
		m.pressTarget = target
		if w := m.windowOf(target); w != nil {
			m.focus(w)
		}
	case node.MouseMove:
		m.hoverCursor = ""
		if target != nil {
			m.hoverCursor = target.Cursor
		}
	}
	e.Target = target
	m.doc.Dispatch(e)

	if typ == node.MouseUp {
		if target != nil && target == m.pressTarget && e.Button != node.ButtonNone {
			m.doc.Dispatch(&node.Event{Type: node.Click, X: mouse.X, Y: mouse.Y, Button: e.Button, Target: target})
		}
		m.pressTarget = nil
	}
}

// syncShift reconciles the shift state with the modifier bits of a pointer
// event and tells the tree about changes.
func (m *Model) syncShift(shift bool) {
	if !m.keys.SyncShift(shift) {
		return
	}
	typ := node.KeyUp
	if shift {
		typ = node.KeyDown
	}
	m.doc.Dispatch(&node.Event{Type: typ, Code: pointer.ShiftLeft})
}

func shiftCode(code rune) string {
	switch code {
	case tea.KeyLeftShift:
		return pointer.ShiftLeft
	case tea.KeyRightShift:
		return pointer.ShiftRight
	}
	return ""
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	if code := shiftCode(msg.Code); code != "" {
		if m.keys.Press(code) {
			m.doc.Dispatch(&node.Event{Type: node.KeyDown, Code: code})
		}
		return nil
	}

	e := &node.Event{Type: node.KeyDown, Key: msg.String()}
	m.doc.Dispatch(e)
	if e.DefaultPrevented() {
		return nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.quitting = true
	case key.Matches(msg, m.keyMap.NewWindow):
		m.OpenWindow(fmt.Sprintf("Window %d", m.nextID+1))
	case key.Matches(msg, m.keyMap.CloseWindow):
		if m.focused != nil {
			m.closeWindow(m.focused)
		}
	case key.Matches(msg, m.keyMap.CycleFocus):
		m.cycleFocus()
	case key.Matches(msg, m.keyMap.ToggleCornerOnly):
		m.toggleCornerOnly()
	case key.Matches(msg, m.keyMap.Menu):
		m.openMenu(menuWindow)
	}
	return nil
}

func (m *Model) handleKeyRelease(msg tea.KeyReleaseMsg) {
	if code := shiftCode(msg.Code); code != "" && m.keys.Release(code) {
		m.doc.Dispatch(&node.Event{Type: node.KeyUp, Code: code})
	}
}

func (m *Model) toggleCornerOnly() {
	m.cornerOnly = !m.cornerOnly
	for _, w := range m.windows {
		m.enableResize(w)
	}
	m.setStatus(fmt.Sprintf("corner handles only: %v", m.cornerOnly))
}

func (m *Model) View() tea.View {
	m.dl.Clear()
	top := render.PaintTree(m.dl, m.doc, 0, m.decorateWindow)
	if m.MenuOpen() {
		m.menu.Decorate(m.dl, top)
	}
	v := tea.NewView(m.dl.RenderToString(m.width, m.height))
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

func (m *Model) paintStatus(width, _ int) string {
	style := m.palette.Get("status")
	var parts []string
	for _, b := range m.keyMap.ShortHelp() {
		if b.Enabled() {
			parts = append(parts, b.Help().Key+" "+b.Help().Desc)
		}
	}
	dl := render.NewDisplayContext()
	x := dl.Text(0, 0, 0, width).Styled(" "+strings.Join(parts, " · ")+" ", style).Done()
	if m.hoverCursor != "" {
		x = dl.Text(x, 0, 0, width).Styled("│ "+m.hoverCursor+" ", style).Done()
	}
	if m.statusText != "" {
		dl.Text(x, 0, 0, width).Styled("│ "+m.statusText, m.palette.Get("status event")).Done()
	}
	return dl.RenderToString(width, 1)
}

func blank(width, height int, style lipgloss.Style) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := style.Render(strings.Repeat(" ", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
