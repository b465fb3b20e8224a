package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Compact    key.Binding

	// Player actions
	ChangeID   key.Binding
	OpenTrack  key.Binding
	OpenArtist key.Binding
	CopyLink   key.Binding

	// Config form
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Compact: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle compact panel"),
		),

		ChangeID: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Change Discord ID"),
		),
		OpenTrack: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open track"),
		),
		OpenArtist: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Search artist"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy track link"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Validate ID"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenTrack, k.OpenArtist, k.ChangeID, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, grouped by section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.OpenTrack, k.OpenArtist, k.CopyLink},
		{k.ChangeID, k.Submit},
		{k.Compact, k.CycleTheme, k.Help, k.Quit},
	}
}
