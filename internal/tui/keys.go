package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right, Switch key.Binding
	Toggle, Add, Edit, Delete     key.Binding
	Clear, Help, Quit             key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("h/←", "lists")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("l/→", "items")),
		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "open/toggle")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Switch},
		{k.Toggle, k.Add, k.Edit, k.Delete, k.Clear},
		{k.Help, k.Quit},
	}
}
