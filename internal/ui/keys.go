package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Session
	Place       key.Binding
	Refresh     key.Binding
	Search      key.Binding
	ToggleDesc  key.Binding
	Up          key.Binding
	Down        key.Binding
	ClearScan   key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ConfirmScan key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear scan / close / quit"),
		),

		Place: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Place book (empty scan field)"),
		),
		ConfirmScan: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit typed ISBN"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh shelves"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search by ISBN"),
		),
		ToggleDesc: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle description"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Previous shelf"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Next shelf"),
		),
		ClearScan: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Clear scan field"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "pgup", "ctrl+u"),
			key.WithHelp("up/pgup", "Scroll result"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "pgdown", "ctrl+d"),
			key.WithHelp("down/pgdn", "Scroll result"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Up, k.Down, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Scanning
		{k.ConfirmScan, k.ClearScan, k.Escape},
		// Shelves
		{k.Up, k.Down, k.Place, k.Refresh},
		// Lookup
		{k.Search, k.ScrollUp, k.ScrollDown},
		// General
		{k.ToggleDesc, k.CycleTheme, k.Help, k.Quit},
	}
}
