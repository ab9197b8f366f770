package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/andy/rebancariza/internal/app"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldCurrency = iota
	settingsFieldDateFormat
	settingsFieldDueSoon
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	state      app.State
	current    app.Settings
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.load()
}

func (m *SettingsModel) load() tea.Cmd {
	return func() tea.Msg {
		return DashboardMsg{Dashboard: m.app.Dashboard()}
	}
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Settings()

	m.fields[settingsFieldCurrency] = textinput.New()
	m.fields[settingsFieldCurrency].Placeholder = "S/"
	m.fields[settingsFieldCurrency].CharLimit = 5
	m.fields[settingsFieldCurrency].Width = 10
	m.fields[settingsFieldCurrency].SetValue(cfg.CurrencySymbol)

	m.fields[settingsFieldDateFormat] = textinput.New()
	m.fields[settingsFieldDateFormat].Placeholder = "02/01/2006"
	m.fields[settingsFieldDateFormat].CharLimit = 20
	m.fields[settingsFieldDateFormat].Width = 20
	m.fields[settingsFieldDateFormat].SetValue(cfg.DateFormat)

	m.fields[settingsFieldDueSoon] = textinput.New()
	m.fields[settingsFieldDueSoon].Placeholder = "5"
	m.fields[settingsFieldDueSoon].CharLimit = 3
	m.fields[settingsFieldDueSoon].Width = 10
	m.fields[settingsFieldDueSoon].SetValue(strconv.Itoa(cfg.DueSoonDays))

	m.fieldFocus = settingsFieldCurrency
	m.fields[settingsFieldCurrency].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	currency := m.fields[settingsFieldCurrency].Value()
	dateFormat := m.fields[settingsFieldDateFormat].Value()
	dueSoonStr := m.fields[settingsFieldDueSoon].Value()

	return func() tea.Msg {
		dueSoon, err := strconv.Atoi(dueSoonStr)
		if err != nil || dueSoon < 0 {
			return settingsSavedMsg{err: fmt.Errorf("due soon days must be zero or a positive number")}
		}

		err = m.app.ApplySettings(app.Settings{
			CurrencySymbol: currency,
			DateFormat:     dateFormat,
			DueSoonDays:    dueSoon,
		})
		return settingsSavedMsg{err: err}
	}
}

// cycleWindow moves to the next chart window and persists it
func (m *SettingsModel) cycleWindow() tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Dispatch(context.Background(), app.ChangeChartWindow{})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := m.app.SaveConfig(); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to save config: %w", err)}
		}
		return DashboardMsg{Dashboard: res.Dashboard}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case DashboardMsg:
		m.state = msg.Dashboard.State
		m.current = m.app.Settings()
		return m, nil

	case RefreshDataMsg:
		return m, m.load()

	case tea.KeyMsg:
		m.err = nil
		switch {
		case key.Matches(msg, DefaultKeyMap.Select):
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		case key.Matches(msg, DefaultKeyMap.Window):
			m.statusMsg = ""
			return m, m.cycleWindow()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved"
		return m, m.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += subtitleStyle.Render("  Appearance") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Theme:"), valueStyle.Render(m.state.Theme))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Chart Window:"), valueStyle.Render(fmt.Sprintf("%d days", m.state.ChartWindow)))

	s += "\n" + subtitleStyle.Render("  Display") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Currency Symbol:"), valueStyle.Render(m.current.CurrencySymbol))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Date Format:"), valueStyle.Render(m.current.DateFormat))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Due Soon Window:"), valueStyle.Render(fmt.Sprintf("%d days", m.current.DueSoonDays)))

	s += "\n" + helpStyle.Render("  t: toggle theme  w: chart window  enter: edit display settings")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{"Currency Symbol:", "Date Format (Go layout):", "Due Soon Window (days):"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
