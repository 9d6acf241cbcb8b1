package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Next       key.Binding
	Previous   key.Binding
	Restart    key.Binding
	NextMode   key.Binding
	Clear      key.Binding
	DeleteWord key.Binding
	Backspace  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("^C", "quit")),
		Next:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^N", "next")),
		Previous:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("^P", "previous")),
		Restart:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "restart")),
		NextMode:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("^T", "mode")),
		Clear:      key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("^U", "clear")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("^W", "delete word")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Restart, k.NextMode, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.Restart, k.NextMode},
		{k.Clear, k.DeleteWord, k.Quit},
	}
}
