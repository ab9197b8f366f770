package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Dashboard key.Binding
	Clients   key.Binding
	Settings  key.Binding

	Theme key.Binding

	// Actions
	Select  key.Binding
	New     key.Binding
	Delete  key.Binding
	Search  key.Binding
	Status  key.Binding
	Window  key.Binding
	Confirm key.Binding
	Deny    key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:      key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Dashboard: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "dashboard")),
	Clients:   key.NewBinding(key.WithKeys("C", "c"), key.WithHelp("C", "clients")),
	Settings:  key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Status:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")),
	Window:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "chart window")),
	Confirm:   key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	Deny:      key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
