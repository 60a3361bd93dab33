package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	approve key.Binding
	deny    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
}

var keys = keyMap{
	approve: key.NewBinding(key.WithKeys("y", "Y")),
	deny:    key.NewBinding(key.WithKeys("n", "N")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("ctrl+c")),
}
