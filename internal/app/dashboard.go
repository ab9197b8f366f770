package app

import (
	"context"

	"github.com/andy/rebancariza/internal/chart"
	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/service"
	"github.com/andy/rebancariza/internal/view"
)

// Dashboard is everything a render needs, computed from one roster read.
type Dashboard struct {
	State       State
	Today       domain.Date
	Format      view.Format
	DueSoonDays int

	Stats   service.Stats
	Metrics []view.Metric

	Clients []*domain.Client // full roster
	Rows    []view.ClientRow // roster after the search and status filter

	Overdue []view.AlertRow
	DueSoon []view.AlertRow

	Series []service.BalancePoint // chart window of the balance history
	Chart  []chart.Point
}

// Dashboard builds the current view-model.
func (a *App) Dashboard() Dashboard {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dashboard()
}

func (a *App) dashboard() Dashboard {
	now := a.Now()
	today := domain.DateOf(now)
	clients := a.Clients.List(context.Background())
	stats := service.ComputeStats(clients)
	overdue, dueSoon := view.AlertRows(a.Alerts.Alerts(clients, now), a.Format)
	series := service.Window(a.balanceSeries(clients, today), a.state.ChartWindow)
	search, status := a.state.Search, a.state.StatusFilter
	matched := a.Clients.Filter(context.Background(), func(c *domain.Client) bool {
		return view.Matches(c, search, status)
	})

	return Dashboard{
		State:       a.state,
		Today:       today,
		Format:      a.Format,
		DueSoonDays: a.Alerts.DueSoonDays,
		Stats:       stats,
		Metrics:     view.StatsPanel(stats, a.Format),
		Clients:     clients,
		Rows:        view.Rows(matched, a.Format),
		Overdue:     overdue,
		DueSoon:     dueSoon,
		Series:      series,
		Chart:       chart.Points(series),
	}
}

// balanceSeries regenerates the history when the roster or the day changed,
// so a jittered chart holds still between renders.
func (a *App) balanceSeries(clients []*domain.Client, today domain.Date) []service.BalancePoint {
	if a.series == nil || a.seriesDay != today.String() {
		a.series = a.Balance.Generate(clients, today)
		a.seriesDay = today.String()
	}
	return a.series
}

func (a *App) invalidateSeries() {
	a.series = nil
}
