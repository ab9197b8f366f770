// Package theme defines the light and dark palettes of the TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name      string
	Primary   lipgloss.Color // titles, focus, selection
	Accent    lipgloss.Color // chart line
	Border    lipgloss.Color
	Muted     lipgloss.Color // secondary text
	Text      lipgloss.Color
	Help      lipgloss.Color
	Footer    lipgloss.Color
	Selection lipgloss.Color // text on a Primary background
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// Light is the default theme.
var Light = Theme{
	Name:      "light",
	Primary:   lipgloss.Color("#205EA6"),
	Accent:    lipgloss.Color("#24837B"),
	Border:    lipgloss.Color("#B7B5AC"),
	Muted:     lipgloss.Color("#6F6E69"),
	Text:      lipgloss.Color("#100F0F"),
	Help:      lipgloss.Color("#5E409D"),
	Footer:    lipgloss.Color("#AD8301"),
	Selection: lipgloss.Color("#FFFCF0"),
	Success:   lipgloss.Color("#66800B"),
	Warning:   lipgloss.Color("#BC5215"),
	Error:     lipgloss.Color("#AF3029"),
}

// Dark mirrors Light for dark terminals.
var Dark = Theme{
	Name:      "dark",
	Primary:   lipgloss.Color("#4385BE"),
	Accent:    lipgloss.Color("#3AA99F"),
	Border:    lipgloss.Color("#575653"),
	Muted:     lipgloss.Color("#878580"),
	Text:      lipgloss.Color("#FFFCF0"),
	Help:      lipgloss.Color("#8B7EC8"),
	Footer:    lipgloss.Color("#D0A215"),
	Selection: lipgloss.Color("#100F0F"),
	Success:   lipgloss.Color("#879A39"),
	Warning:   lipgloss.Color("#DA702C"),
	Error:     lipgloss.Color("#D14D41"),
}

// Active is the currently selected theme.
var Active = Light

// ByName returns the theme called name, Light for anything unknown.
func ByName(name string) Theme {
	if name == Dark.Name {
		return Dark
	}
	return Light
}

// Set makes the named theme active.
func Set(name string) {
	Active = ByName(name)
}
