package notebook

import "charm.land/bubbles/v2/key"

// KeyMap holds the panel key bindings.
type KeyMap struct {
	Down        key.Binding
	Up          key.Binding
	Edit        key.Binding
	Leave       key.Binding
	Menu        key.Binding
	InsertAbove key.Binding
	InsertBelow key.Binding
	HalfDown    key.Binding
	HalfUp      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default panel bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next cell")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "prev cell")),
		Edit:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Leave:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop editing")),
		Menu:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cell menu")),
		InsertAbove: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "insert above")),
		InsertBelow: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "insert below")),
		HalfDown:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		HalfUp:      key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// FullHelp returns every binding grouped for the help dialog: navigation,
// editing, then cell actions.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.HalfDown, k.HalfUp},
		{k.Edit, k.Leave},
		{k.Menu, k.InsertAbove, k.InsertBelow, k.Help, k.Quit},
	}
}

// MenuKeyMap holds the context menu bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("k", "up")),
		Down:   key.NewBinding(key.WithKeys("j", "down")),
		Select: key.NewBinding(key.WithKeys("enter")),
		Close:  key.NewBinding(key.WithKeys("esc", "m")),
	}
}
