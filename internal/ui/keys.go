package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	Refresh     key.Binding
	Diagnostics key.Binding
	Escape      key.Binding

	// Tabs
	TabHome    key.Binding
	TabLibrary key.Binding
	TabProfile key.Binding

	// Home
	NextSection   key.Binding
	HeroPrev      key.Binding
	HeroNext      key.Binding
	RailPrev      key.Binding
	RailNext      key.Binding
	CycleRange    key.Binding
	Notifications key.Binding
	OpenBrowser   key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Confirm      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Refresh now"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Diagnostics"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),

		// Tabs
		TabHome: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Home"),
		),
		TabLibrary: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Library"),
		),
		TabProfile: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Profile"),
		),

		// Home
		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next section"),
		),
		HeroPrev: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "Previous featured"),
		),
		HeroNext: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "Next featured"),
		),
		RailPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Trending back"),
		),
		RailNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Trending forward"),
		),
		CycleRange: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Cycle trending range"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Notifications"),
		),
		OpenBrowser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open in browser"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl+d", "Half page down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TabHome, k.TabLibrary, k.TabProfile, k.NextSection},
		{k.HeroPrev, k.HeroNext, k.RailPrev, k.RailNext, k.CycleRange},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp, k.Confirm},
		{k.Notifications, k.OpenBrowser, k.Refresh},
		{k.CycleTheme, k.Diagnostics, k.Help, k.Quit},
	}
}
