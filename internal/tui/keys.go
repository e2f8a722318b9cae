package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Close      key.Binding
	Minimize   key.Binding
	Fullscreen key.Binding
	Pause      key.Binding
	Open       key.Binding
	Copy       key.Binding
	Restart    key.Binding
	Up         key.Binding
	Down       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Close:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "close")),
		Minimize:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimize")),
		Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
		Pause:      key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Close, k.Minimize, k.Fullscreen, k.Pause, k.Open, k.Copy, k.Restart}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Down}}
}
