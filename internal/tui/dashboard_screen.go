package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/rebancariza/internal/app"
	"github.com/andy/rebancariza/internal/chart"
	"github.com/andy/rebancariza/internal/view"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// alertListLimit caps each alert list so the chart stays on screen
const alertListLimit = 6

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	data   app.Dashboard
	width  int
	height int

	loading bool
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
		width:   80,
		height:  24,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		return DashboardMsg{Dashboard: m.app.Dashboard()}
	}
}

func (m *DashboardModel) cycleWindow() tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Dispatch(context.Background(), app.ChangeChartWindow{})
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DashboardMsg{Dashboard: res.Dashboard}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case DashboardMsg:
		m.loading = false
		m.data = msg.Dashboard
		return m, nil

	case RefreshDataMsg:
		return m, m.loadData()

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.Window) {
			return m, m.cycleWindow()
		}
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	var s strings.Builder

	s.WriteString(m.renderMetrics() + "\n\n")

	if len(m.data.Clients) == 0 {
		s.WriteString(subtitleStyle.Render("  No clients yet. Press C, then n to add one.") + "\n")
		return s.String()
	}

	half := (m.width - 4) / 2
	overdue := renderAlertList("Overdue payments", m.data.Overdue, overdueStyle, half)
	dueSoon := renderAlertList(fmt.Sprintf("Due within %d days", m.data.DueSoonDays), m.data.DueSoon, dueSoonStyle, half)
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, overdue, "  ", dueSoon) + "\n\n")

	s.WriteString(m.renderChart())
	s.WriteString("\n\n" + helpStyle.Render("  w: chart window (7/30/90 days)"))
	return s.String()
}

func (m *DashboardModel) renderMetrics() string {
	boxes := make([]string, 0, len(m.data.Metrics))
	for i, metric := range m.data.Metrics {
		value := metricStyle.Render(metric.Value)
		if i == 3 && m.data.Stats.DelinquentCount > 0 {
			value = delinquentStyle.Render(metric.Value)
		}
		boxes = append(boxes, boxStyle.Render(subtitleStyle.Render(metric.Label)+"\n"+value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderAlertList(title string, rows []view.AlertRow, style lipgloss.Style, width int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(rows))) + "\n")
	if len(rows) == 0 {
		s.WriteString(subtitleStyle.Render("  none") + "\n")
	}
	for i, r := range rows {
		if i == alertListLimit {
			s.WriteString(subtitleStyle.Render(fmt.Sprintf("  and %d more", len(rows)-alertListLimit)) + "\n")
			break
		}
		s.WriteString(fmt.Sprintf("  %s %s\n", padRight(truncateStr(r.Name, 24), 24), style.Render(r.Label)))
		s.WriteString(subtitleStyle.Render("    "+r.Detail) + "\n")
	}
	return lipgloss.NewStyle().Width(max(width, 30)).Render(s.String())
}

func (m *DashboardModel) renderChart() string {
	title := titleStyle.Render(fmt.Sprintf("Balance, last %d days", m.data.State.ChartWindow))
	height := m.height - 20
	if height < 6 {
		height = 6
	}
	plot := chart.Line(m.data.Chart, chart.Options{
		Width:  m.width - 2,
		Height: min(height, 14),
		Symbol: m.data.Format.CurrencySymbol,
	})
	return title + "\n" + chartStyle.Render(plot)
}
