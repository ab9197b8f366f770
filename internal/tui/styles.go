package tui

import (
	"github.com/andy/rebancariza/internal/tui/theme"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor lipgloss.Color
	accentColor  lipgloss.Color
	mutedColor   lipgloss.Color
	successColor lipgloss.Color
	warningColor lipgloss.Color
	errorColor   lipgloss.Color
	borderColor  lipgloss.Color

	// Base styles
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	helpStyle     lipgloss.Style
	selectedStyle lipgloss.Style

	// Box styles
	boxStyle lipgloss.Style

	// Layout
	appBorderStyle lipgloss.Style

	// Header/Footer
	headerStyle lipgloss.Style
	footerStyle lipgloss.Style

	// Client and alert specific
	activeStyle     lipgloss.Style
	delinquentStyle lipgloss.Style
	overdueStyle    lipgloss.Style
	dueSoonStyle    lipgloss.Style
	chartStyle      lipgloss.Style
	metricStyle     lipgloss.Style
)

func init() {
	applyTheme(theme.Light.Name)
}

// applyTheme activates the named theme and rebuilds every style from it
func applyTheme(name string) {
	theme.Set(name)
	t := theme.Active

	primaryColor = t.Primary
	accentColor = t.Accent
	mutedColor = t.Muted
	successColor = t.Success
	warningColor = t.Warning
	errorColor = t.Error
	borderColor = t.Border

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle = lipgloss.NewStyle().Foreground(t.Help)
	selectedStyle = lipgloss.NewStyle().Bold(true).Background(primaryColor).Foreground(t.Selection)

	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)

	appBorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(t.Footer).Bold(true)

	activeStyle = lipgloss.NewStyle().Foreground(successColor)
	delinquentStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
	overdueStyle = lipgloss.NewStyle().Foreground(errorColor)
	dueSoonStyle = lipgloss.NewStyle().Foreground(warningColor)
	chartStyle = lipgloss.NewStyle().Foreground(accentColor)
	metricStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
}
