package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap holds every binding the TUI reacts to.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Pickup    key.Binding
	Use       key.Binding
	Inventory key.Binding
	Look      key.Binding
	Prompt    key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "north")),
		Down:      key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "south")),
		Left:      key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "west")),
		Right:     key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "east")),
		Pickup:    key.NewBinding(key.WithKeys("g", "p"), key.WithHelp("g", "pick up")),
		Use:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "use item")),
		Inventory: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inventory")),
		Look:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "look")),
		Prompt:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Confirm:   key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "cancel")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pickup, k.Use, k.Prompt, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pickup, k.Use, k.Inventory, k.Look},
		{k.Prompt, k.Quit},
	}
}

// viewportKeyMap returns a viewport keymap limited to paging, since the
// arrow keys move the player.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
