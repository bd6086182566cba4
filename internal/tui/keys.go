package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	sync    key.Binding
	details key.Binding
	refresh key.Binding
	build   key.Binding
	quit    key.Binding
}

var keys = keyMap{
	sync:    key.NewBinding(key.WithKeys("s")),
	details: key.NewBinding(key.WithKeys("d")),
	refresh: key.NewBinding(key.WithKeys("r")),
	build:   key.NewBinding(key.WithKeys("i")),
	quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}
