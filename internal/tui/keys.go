package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	// Panel
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Actions
	TogglePanel key.Binding
	Done        key.Binding
	Clear       key.Binding
	CopyAllJSON key.Binding
	CopyAllYAML key.Binding

	// Control placement
	TopLeft     key.Binding
	TopRight    key.Binding
	BottomLeft  key.Binding
	BottomRight key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.TogglePanel, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.TogglePanel, k.Done, k.Clear},
		{k.CopyAllJSON, k.CopyAllYAML},
		{k.TopLeft, k.TopRight, k.BottomLeft, k.BottomRight},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "oldest"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "newest"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("`"),
			key.WithHelp("`", "logs"),
		),
		Done: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "done"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		CopyAllJSON: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "copy all as JSON"),
		),
		CopyAllYAML: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy all as YAML"),
		),
		TopLeft: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "top left"),
		),
		TopRight: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "top right"),
		),
		BottomLeft: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "bottom left"),
		),
		BottomRight: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "bottom right"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
