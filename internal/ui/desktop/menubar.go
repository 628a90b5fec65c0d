package desktop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/wnd"
)

const (
	menuWindow = "Window"
	menuView   = "View"
)

var menuTitles = []string{menuWindow, menuView}

func (m *Model) newMenuBar() *node.Node {
	bar := &node.Node{Name: "menubar", Class: "menubar", Z: zMenuBar}
	bar.Paint = func(width, height int) string {
		return blank(width, height, m.palette.Get("menubar"))
	}
	x := 1
	for _, title := range menuTitles {
		label := " " + title + " "
		entry := &node.Node{
			Name:   "menu-" + strings.ToLower(title),
			Class:  wnd.MenuItemClass,
			Cursor: "pointer",
			Rect:   layout.Rect(x, 0, ansi.StringWidth(label), 1),
		}
		entry.Paint = func(int, int) string {
			selector := "menubar"
			if m.menuOwner == title && m.menu != nil && !m.menu.Closed() {
				selector = "menubar selected"
			}
			return m.palette.Get(selector).Render(label)
		}
		entry.AddListener(node.Click, func(e *node.Event) {
			e.StopPropagation()
			m.toggleMenu(title)
		})
		bar.AppendChild(entry)
		x += entry.Rect.Dx()
	}
	m.doc.AppendChild(bar)
	return bar
}

// MenuOpen reports whether a menubar menu is showing.
func (m *Model) MenuOpen() bool {
	return m.menu != nil && !m.menu.Closed()
}

func (m *Model) toggleMenu(title string) {
	if m.MenuOpen() && m.menuOwner == title {
		m.closeMenu()
		return
	}
	m.openMenu(title)
}

func (m *Model) closeMenu() {
	if m.menu != nil {
		m.menu.Close()
	}
	m.menu = nil
	m.menuOwner = ""
}

func (m *Model) openMenu(title string) {
	m.closeMenu()
	entry := m.menubar.Find("menu-" + strings.ToLower(title))
	if entry == nil {
		return
	}
	anchor := entry.AbsRect().Min
	styles := m.submenuStyles()
	m.menuOwner = title
	var menu *wnd.Submenu
	menu = wnd.OpenSubmenu(m.menuItems(title), anchor, m.doc, wnd.SubmenuOptions{
		Class:  "menubar-" + strings.ToLower(title),
		Styles: &styles,
		OnClose: func() {
			if m.menu == menu {
				m.menu = nil
				m.menuOwner = ""
			}
		},
	})
	m.menu = menu
}

func (m *Model) submenuStyles() wnd.SubmenuStyles {
	return wnd.SubmenuStyles{
		Border:    m.palette.Get("submenu border"),
		Text:      m.palette.Get("submenu text"),
		Selected:  m.palette.Get("submenu selected"),
		Disabled:  m.palette.Get("submenu disabled"),
		Shortcut:  m.palette.Get("submenu shortcut"),
		Separator: m.palette.Get("submenu separator"),
	}
}

func (m *Model) menuItems(title string) []wnd.SubmenuItem {
	switch title {
	case menuWindow:
		items := []wnd.SubmenuItem{
			{
				Label:    "New window",
				Shortcut: shortcut(m.keyMap.NewWindow),
				Click:    func() { m.OpenWindow(fmt.Sprintf("Window %d", m.nextID+1)) },
			},
			{
				Label:    "Close window",
				Shortcut: shortcut(m.keyMap.CloseWindow),
				Disabled: wnd.Computed(func() bool { return m.focused == nil }),
				Click: func() {
					if m.focused != nil {
						m.closeWindow(m.focused)
					}
				},
			},
			{
				Label:    "Cycle focus",
				Shortcut: shortcut(m.keyMap.CycleFocus),
				Disabled: wnd.Static(len(m.windows) < 2),
				Click:    m.cycleFocus,
			},
		}
		if len(m.windows) > 0 {
			items = append(items, wnd.SubmenuItem{Label: wnd.Separator})
		}
		for _, w := range m.windows {
			items = append(items, wnd.SubmenuItem{
				Label:   fmt.Sprintf("#%d %s", w.ID, w.Title),
				Checked: wnd.Computed(func() bool { return m.focused == w }),
				Click:   func() { m.focus(w) },
			})
		}
		return items
	case menuView:
		return []wnd.SubmenuItem{
			{
				Label:    "Corner handles only",
				Shortcut: shortcut(m.keyMap.ToggleCornerOnly),
				Checked:  wnd.Static(m.cornerOnly),
				Click:    m.toggleCornerOnly,
			},
			{Label: wnd.Separator},
			{
				Label:    "Quit",
				Shortcut: shortcut(m.keyMap.Quit),
				Click:    func() { m.quitting = true },
			},
		}
	}
	return nil
}
