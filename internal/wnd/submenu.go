package wnd

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/sahilm/fuzzy"

	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/ui/render"
)

// Separator as a label renders a horizontal rule instead of an item.
const Separator = "----"

const (
	ZMenuSubItem       = 5000
	SubmenuClass       = "submenu"
	SubmenuRowClass    = "submenu-row"
	SubmenuCheckClass  = "submenu-check"
	SubmenuSplitClass  = "submenu-splitter"
	MenuItemClass      = "menu-item"
	MenuItemOffClass   = "menu-item disabled"
	checkMark          = "✓"
	checkColumn        = 2
	minSubmenuInnerLen = 8
)

type SubmenuItem struct {
	Label    string
	Shortcut string
	Checked  Flag
	Disabled Flag
	Click    func()
}

// SubmenuStyles colors the menu. Only the background of Selected is used,
// painted across the highlighted row; without one the row is reversed.
// Disabled rows are dimmed on top of Disabled.
type SubmenuStyles struct {
	Border    lipgloss.Style
	Text      lipgloss.Style
	Selected  lipgloss.Style
	Disabled  lipgloss.Style
	Shortcut  lipgloss.Style
	Separator lipgloss.Style
}

func DefaultSubmenuStyles() SubmenuStyles {
	return SubmenuStyles{
		Border:    lipgloss.NewStyle(),
		Text:      lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle(),
		Disabled:  lipgloss.NewStyle(),
		Shortcut:  lipgloss.NewStyle().Faint(true),
		Separator: lipgloss.NewStyle().Faint(true),
	}
}

type SubmenuOptions struct {
	// Class is added to the overlay node class.
	Class string
	// OnClose runs after the menu closed because an item was activated or
	// the user dismissed it. It does not run for an explicit Close.
	OnClose func()
	Styles  *SubmenuStyles
}

type submenuRow struct {
	item      SubmenuItem
	separator bool
	checked   bool
	disabled  bool
	node      *node.Node
}

func (r *submenuRow) selectable() bool {
	return !r.separator && !r.disabled
}

// Submenu is an open popup menu. It stays open until an item is activated,
// the user clicks outside of it, presses escape, or Close is called.
type Submenu struct {
	holder    *node.Node
	rows      []*submenuRow
	styles    SubmenuStyles
	onClose   func()
	highlight int
	query     string
	closed    bool
	removers  []func()
}

// OpenSubmenu renders items into an overlay attached to parent. The overlay
// is placed below anchor, or above it when there is no room below, and is
// kept inside parent horizontally. Checked and Disabled are evaluated once
// here.
func OpenSubmenu(items []SubmenuItem, anchor layout.Position, parent *node.Node, opts SubmenuOptions) *Submenu {
	styles := DefaultSubmenuStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	m := &Submenu{styles: styles, onClose: opts.OnClose, highlight: -1}

	inner := minSubmenuInnerLen
	for _, item := range items {
		row := &submenuRow{item: item}
		if item.Label == Separator {
			row.separator = true
		} else {
			row.checked = item.Checked.Eval()
			row.disabled = item.Disabled.Eval()
			inner = max(inner, rowWidth(item))
		}
		m.rows = append(m.rows, row)
	}

	class := SubmenuClass
	if opts.Class != "" {
		class += " " + opts.Class
	}
	width, height := inner+2, len(m.rows)+2
	m.holder = &node.Node{
		Name:  "submenu",
		Class: class,
		Z:     ZMenuSubItem,
		Rect:  placeSubmenu(anchor, width, height, parent.Rect.Dx(), parent.Rect.Dy()),
		Paint: func(w, h int) string {
			return render.Frame(w, h, "", lipgloss.NormalBorder(), m.styles.Border)
		},
	}
	m.holder.AddListener(node.Click, func(e *node.Event) {
		e.StopPropagation()
	})
	for i, row := range m.rows {
		m.buildRow(i, row, inner)
	}
	parent.AppendChild(m.holder)

	doc := parent.Root()
	m.removers = append(m.removers,
		doc.AddListener(node.Click, m.onOutsideClick),
		doc.AddListener(node.KeyDown, m.onKey),
	)
	return m
}

func rowWidth(item SubmenuItem) int {
	w := checkColumn + uniseg.StringWidth(item.Label)
	if item.Shortcut != "" {
		w += 2 + uniseg.StringWidth(item.Shortcut)
	}
	return w
}

// placeSubmenu puts a width x height box below the anchor row, or above it
// when the parent has no room below, shifted left to stay inside the parent.
func placeSubmenu(anchor layout.Position, width, height, parentWidth, parentHeight int) layout.Rectangle {
	x, y := anchor.X, anchor.Y+1
	if y+height > parentHeight && anchor.Y-height >= 0 {
		y = anchor.Y - height
	}
	if x+width > parentWidth {
		x = parentWidth - width
	}
	return layout.Rect(max(x, 0), max(y, 0), width, height)
}

func (m *Submenu) buildRow(i int, row *submenuRow, inner int) {
	row.node = &node.Node{
		Name:  "submenu-row",
		Class: SubmenuRowClass,
		Rect:  layout.Rect(1, 1+i, inner, 1),
	}
	if row.separator {
		row.node.AppendChild(&node.Node{
			Name:  "submenu-splitter",
			Class: SubmenuSplitClass,
			Rect:  layout.Rect(0, 0, inner, 1),
			Paint: func(w, _ int) string {
				return m.styles.Separator.Render(strings.Repeat("─", w))
			},
		})
		m.holder.AppendChild(row.node)
		return
	}

	if row.checked {
		row.node.AppendChild(&node.Node{
			Name:  "submenu-check",
			Class: SubmenuCheckClass,
			Rect:  layout.Rect(0, 0, checkColumn, 1),
			Z:     1,
			Paint: func(w, _ int) string {
				return m.rowStyle(i).Render(checkMark + strings.Repeat(" ", max(w-1, 0)))
			},
		})
	}
	item := &node.Node{
		Name:  "menu-item",
		Class: MenuItemClass,
		Rect:  layout.Rect(0, 0, inner, 1),
		Paint: func(w, _ int) string {
			return m.paintItem(i, w)
		},
	}
	if row.disabled {
		item.Class = MenuItemOffClass
	} else {
		row.node.AddListener(node.Click, func(*node.Event) {
			m.activate(i)
		})
	}
	row.node.AppendChild(item)
	m.holder.AppendChild(row.node)
}

func (m *Submenu) rowStyle(i int) lipgloss.Style {
	if m.rows[i].disabled {
		return m.styles.Disabled
	}
	return m.styles.Text
}

// Decorate queues the row effects of the menu at z, which has to be above
// the layers the menu was painted at.
func (m *Submenu) Decorate(dl *render.DisplayContext, z int) {
	if m.closed {
		return
	}
	_, reverse := m.styles.Selected.GetBackground().(lipgloss.NoColor)
	for i, row := range m.rows {
		rect := row.node.AbsRect()
		switch {
		case row.disabled:
			dl.AddDim(rect, z)
		case i != m.highlight:
		case reverse:
			dl.AddReverse(rect, z)
		default:
			dl.AddPaint(rect, m.styles.Selected, z)
		}
	}
}

func (m *Submenu) paintItem(i, width int) string {
	row := m.rows[i]
	style := m.rowStyle(i)
	label := strings.Repeat(" ", checkColumn) + row.item.Label
	shortcut := row.item.Shortcut
	gap := width - uniseg.StringWidth(label) - uniseg.StringWidth(shortcut)
	if gap < 1 {
		return style.Render(ansi.Truncate(label, width, "…"))
	}
	if shortcut == "" {
		return style.Render(label + strings.Repeat(" ", gap))
	}
	shortcutStyle := m.styles.Shortcut.Inherit(style)
	return style.Render(label+strings.Repeat(" ", gap)) + shortcutStyle.Render(shortcut)
}

// activate runs the click callback of an enabled row. The menu is closed
// even when the callback panics.
func (m *Submenu) activate(i int) {
	row := m.rows[i]
	if m.closed || !row.selectable() {
		return
	}
	defer m.dismiss()
	if row.item.Click != nil {
		row.item.Click()
	}
}

func (m *Submenu) onOutsideClick(*node.Event) {
	m.dismiss()
}

func (m *Submenu) dismiss() {
	if m.closed {
		return
	}
	m.Close()
	if m.onClose != nil {
		m.onClose()
	}
}

func (m *Submenu) onKey(e *node.Event) {
	if m.closed {
		return
	}
	switch e.Key {
	case "up":
		m.step(-1)
	case "down":
		m.step(1)
	case "enter":
		if m.highlight >= 0 {
			m.activate(m.highlight)
		}
	case "esc", "escape":
		m.dismiss()
	case "backspace":
		if m.query != "" {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
			m.search()
		}
	default:
		runes := []rune(e.Key)
		if len(runes) != 1 {
			return
		}
		m.query += e.Key
		m.search()
	}
	e.PreventDefault()
}

// step moves the highlight to the next selectable row in dir, wrapping
// around.
func (m *Submenu) step(dir int) {
	n := len(m.rows)
	if n == 0 {
		return
	}
	m.query = ""
	i := m.highlight
	if i < 0 && dir < 0 {
		i = n
	}
	for range n {
		i = ((i+dir)%n + n) % n
		if m.rows[i].selectable() {
			m.highlight = i
			return
		}
	}
}

// search highlights the selectable row whose label best matches the typed
// query.
func (m *Submenu) search() {
	if m.query == "" {
		return
	}
	var labels []string
	var index []int
	for i, row := range m.rows {
		if row.selectable() {
			labels = append(labels, row.item.Label)
			index = append(index, i)
		}
	}
	if matches := fuzzy.Find(m.query, labels); len(matches) > 0 {
		m.highlight = index[matches[0].Index]
	}
}

// Close removes the overlay and its document listeners. Calling it again
// does nothing.
func (m *Submenu) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, remove := range m.removers {
		remove()
	}
	m.holder.Remove()
}

func (m *Submenu) Closed() bool {
	return m.closed
}

// Node returns the overlay node.
func (m *Submenu) Node() *node.Node {
	return m.holder
}

// Highlighted returns the index of the highlighted item, or -1.
func (m *Submenu) Highlighted() int {
	return m.highlight
}
