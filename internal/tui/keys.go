package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	complete key.Binding
	delete   key.Binding
	filter   key.Binding
	refresh  key.Binding
	copy     key.Binding
	quit     key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	complete: key.NewBinding(key.WithKeys("enter", " ")),
	delete:   key.NewBinding(key.WithKeys("d")),
	filter:   key.NewBinding(key.WithKeys("f")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	copy:     key.NewBinding(key.WithKeys("c")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n", "esc")),
}
