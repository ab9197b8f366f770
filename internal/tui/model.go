package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/rebancariza/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenClients
	ScreenSettings
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenClients:
		return "Clients"
	case ScreenSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	dashboard tea.Model
	clients   tea.Model
	settings  tea.Model

	// First-run state
	checkedFirstRun bool

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	applyTheme(a.State().Theme)
	return Model{
		app:           a,
		currentScreen: ScreenDashboard,
		dashboard:     NewDashboardModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkFirstRun(), m.dashboard.Init())
}

// checkFirstRun checks if any clients exist in the database
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		return firstRunCheckMsg{hasClients: len(m.app.Dashboard().Clients) > 0}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	if m.screen(screen) != nil {
		return func() tea.Msg { return RefreshDataMsg{} }
	}

	var sm tea.Model
	switch screen {
	case ScreenDashboard:
		sm = NewDashboardModel(m.app)
	case ScreenClients:
		sm = NewClientsModel(m.app)
	case ScreenSettings:
		sm = NewSettingsModel(m.app)
	default:
		return nil
	}
	if m.width > 0 {
		sm, _ = sm.Update(m.screenSize())
	}
	m.setScreen(screen, sm)
	return sm.Init()
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global keys (D, C, ",", t, q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) screen(s Screen) tea.Model {
	switch s {
	case ScreenDashboard:
		return m.dashboard
	case ScreenClients:
		return m.clients
	case ScreenSettings:
		return m.settings
	}
	return nil
}

func (m *Model) setScreen(s Screen, model tea.Model) {
	switch s {
	case ScreenDashboard:
		m.dashboard = model
	case ScreenClients:
		m.clients = model
	case ScreenSettings:
		m.settings = model
	}
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.screen(m.currentScreen).(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

func (m *Model) switchTo(s Screen) tea.Cmd {
	m.currentScreen = s
	return m.initScreen(s)
}

// toggleTheme flips and persists the theme
func (m *Model) toggleTheme() tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Dispatch(context.Background(), app.ToggleTheme{})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ThemeChangedMsg{Theme: res.Dashboard.State.Theme}
	}
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// screens size their tables and chart from the frame
		inner := m.screenSize()
		var cmds []tea.Cmd
		for _, s := range []Screen{ScreenDashboard, ScreenClients, ScreenSettings} {
			if sm := m.screen(s); sm != nil {
				updated, cmd := sm.Update(inner)
				m.setScreen(s, updated)
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		m.err = nil

		// Skip global keys when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Dashboard):
				return m, m.switchTo(ScreenDashboard)

			case key.Matches(msg, DefaultKeyMap.Clients):
				return m, m.switchTo(ScreenClients)

			case key.Matches(msg, DefaultKeyMap.Settings):
				return m, m.switchTo(ScreenSettings)

			case key.Matches(msg, DefaultKeyMap.Theme):
				return m, m.toggleTheme()
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasClients {
			m.checkedFirstRun = true
			initCmd := m.switchTo(ScreenClients)
			openFormCmd := func() tea.Msg { return OpenNewClientFormMsg{} }
			return m, tea.Sequence(initCmd, openFormCmd)
		}
		m.checkedFirstRun = true
		return m, nil

	case ThemeChangedMsg:
		applyTheme(msg.Theme)
		// screens that show the theme re-read state
		return m.route(RefreshDataMsg{})

	case SwitchScreenMsg:
		return m, m.switchTo(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.route(msg)
}

// route forwards msg to the current screen
func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	sm := m.screen(m.currentScreen)
	if sm == nil {
		return m, nil
	}
	updated, cmd := sm.Update(msg)
	m.setScreen(m.currentScreen, updated)
	return m, cmd
}

// screenSize is the area left to a screen inside the frame, header and footer
func (m Model) screenSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.innerWidth(), Height: m.height - 12}
}

func (m Model) innerWidth() int {
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	return innerWidth
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("rebancariza - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[D]ashboard  [C]lients  [,] Settings  [t]heme  [Q]uit")

	content := "Loading..."
	if sm := m.screen(m.currentScreen); sm != nil {
		content = sm.View()
	}

	// Error display
	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.innerWidth()
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
