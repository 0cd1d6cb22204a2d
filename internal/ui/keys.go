package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Home         key.Binding
	End          key.Binding
	Confirm      key.Binding
	ConfirmSplit key.Binding
	SplitLeft    key.Binding
	SplitRight   key.Binding
	SplitUp      key.Binding
	SplitDown    key.Binding
	Parent       key.Binding
	ToggleHidden key.Binding
	Copy         key.Binding
	Complete     key.Binding
	Dismiss      key.Binding
}

func defaultKeyMap(mode Mode) keyMap {
	km := keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/↓", "move")),
		Down:         key.NewBinding(key.WithKeys("down", "ctrl+n")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		Home:         key.NewBinding(key.WithKeys("home")),
		End:          key.NewBinding(key.WithKeys("end")),
		Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		ConfirmSplit: key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("alt+enter", "split")),
		SplitLeft:    key.NewBinding(key.WithKeys("alt+h")),
		SplitRight:   key.NewBinding(key.WithKeys("ctrl+v", "alt+l"), key.WithHelp("ctrl+v", "vsplit")),
		SplitUp:      key.NewBinding(key.WithKeys("alt+k")),
		SplitDown:    key.NewBinding(key.WithKeys("ctrl+x", "alt+j"), key.WithHelp("ctrl+x", "hsplit")),
		Parent:       key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "parent")),
		ToggleHidden: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "hidden")),
		Copy:         key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Complete:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Dismiss:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "close")),
	}
	if mode == ModePath {
		km.ToggleHidden.SetEnabled(false)
		km.Parent.SetEnabled(false)
		km.SplitLeft.SetEnabled(false)
		km.SplitRight.SetEnabled(false)
		km.SplitUp.SetEnabled(false)
		km.SplitDown.SetEnabled(false)
	} else {
		km.Complete.SetEnabled(false)
	}
	return km
}

func (k keyMap) footerBindings() []key.Binding {
	return []key.Binding{k.Up, k.Confirm, k.ConfirmSplit, k.SplitRight, k.SplitDown, k.Complete, k.Parent, k.ToggleHidden, k.Copy, k.Dismiss}
}

// footerText renders the enabled bindings that carry help text.
func (k keyMap) footerText() string {
	parts := make([]string, 0, 10)
	for _, b := range k.footerBindings() {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
