package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	sync      key.Binding
	conflicts key.Binding
	migrate   key.Binding
	refresh   key.Binding
	local     key.Binding
	remote    key.Binding
	rollback  key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	sync:      key.NewBinding(key.WithKeys("s")),
	conflicts: key.NewBinding(key.WithKeys("c")),
	migrate:   key.NewBinding(key.WithKeys("m")),
	refresh:   key.NewBinding(key.WithKeys("r")),
	local:     key.NewBinding(key.WithKeys("l")),
	remote:    key.NewBinding(key.WithKeys("p")),
	rollback:  key.NewBinding(key.WithKeys("b")),
}
