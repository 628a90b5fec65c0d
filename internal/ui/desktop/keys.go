package desktop

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/idursun/wndkit/internal/config"
)

type KeyMap struct {
	Quit             key.Binding
	NewWindow        key.Binding
	CloseWindow      key.Binding
	CycleFocus       key.Binding
	ToggleCornerOnly key.Binding
	Menu             key.Binding
}

func NewKeyMap(cfg config.KeysConfig) KeyMap {
	return KeyMap{
		Quit:             binding(cfg.Quit, "quit"),
		NewWindow:        binding(cfg.NewWindow, "new"),
		CloseWindow:      binding(cfg.CloseWindow, "close"),
		CycleFocus:       binding(cfg.CycleFocus, "focus"),
		ToggleCornerOnly: binding(cfg.ToggleCornerOnly, "corners"),
		Menu:             binding(cfg.Menu, "menu"),
	}
}

func binding(keys []string, help string) key.Binding {
	b := key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), help))
	if len(keys) == 0 {
		b.SetEnabled(false)
	}
	return b
}

// ShortHelp lists the bindings shown on the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewWindow, k.CloseWindow, k.CycleFocus, k.ToggleCornerOnly, k.Menu, k.Quit}
}

// shortcut returns the first key of b for menu rows.
func shortcut(b key.Binding) string {
	if keys := b.Keys(); len(keys) > 0 {
		return keys[0]
	}
	return ""
}
