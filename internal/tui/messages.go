package tui

import "github.com/andy/rebancariza/internal/app"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenNewClientFormMsg tells the clients screen to open the new client form
type OpenNewClientFormMsg struct{}

// DashboardMsg carries a fresh view-model to the active screen
type DashboardMsg struct {
	Dashboard app.Dashboard
}

// ThemeChangedMsg reports the theme now in effect
type ThemeChangedMsg struct {
	Theme string
}

// firstRunCheckMsg reports whether the database has any clients
type firstRunCheckMsg struct {
	hasClients bool
}
