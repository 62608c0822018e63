package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Complete key.Binding
	Delete   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick / add")),
		Complete: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "complete")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Focus, k.Up, k.Down, k.Select, k.Complete, k.Delete, k.Quit}
}
