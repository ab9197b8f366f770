package service

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/shopspring/decimal"
)

// Stats is the four-metric dashboard snapshot
type Stats struct {
	TotalClients    int
	ActiveClients   int
	TotalRevenue    decimal.Decimal // monthly fees of active clients
	DelinquentCount int
}

// ComputeStats reduces the roster to the dashboard metrics
func ComputeStats(clients []*domain.Client) Stats {
	s := Stats{TotalRevenue: decimal.Zero}
	for _, c := range clients {
		s.TotalClients++
		switch c.Status {
		case domain.StatusActive:
			s.ActiveClients++
			s.TotalRevenue = s.TotalRevenue.Add(c.MonthlyFee)
		case domain.StatusDelinquent:
			s.DelinquentCount++
		}
	}
	return s
}

// AlertKind classifies an active client's payment date
type AlertKind int

const (
	AlertNone AlertKind = iota
	AlertDueSoon
	AlertOverdue
)

// Alert is a client paired with its computed day count: days overdue for
// AlertOverdue, days remaining for AlertDueSoon
type Alert struct {
	Client *domain.Client
	Kind   AlertKind
	Days   int
}

// Alerts holds the two alert lists in roster order
type Alerts struct {
	Overdue []Alert
	DueSoon []Alert
}

// AlertEngine flags active clients whose payment date has passed or is near
type AlertEngine struct {
	DueSoonDays int
}

// DaysUntil returns ceil((payment - now) / 24h), with payment taken as
// midnight in now's location
func DaysUntil(payment domain.Date, now time.Time) int {
	diff := payment.In(now.Location()).Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// Classify returns the alert for one client, Kind AlertNone when the client
// is not eligible or not close enough to its payment date
func (e AlertEngine) Classify(c *domain.Client, now time.Time) Alert {
	if !c.IsActive() || c.PaymentDate.IsZero() {
		return Alert{Client: c, Kind: AlertNone}
	}
	days := DaysUntil(c.PaymentDate, now)
	switch {
	case days < 0:
		return Alert{Client: c, Kind: AlertOverdue, Days: -days}
	case days <= e.DueSoonDays:
		return Alert{Client: c, Kind: AlertDueSoon, Days: days}
	default:
		return Alert{Client: c, Kind: AlertNone}
	}
}

// Alerts partitions the roster into overdue and due-soon lists
func (e AlertEngine) Alerts(clients []*domain.Client, now time.Time) Alerts {
	var out Alerts
	for _, c := range clients {
		a := e.Classify(c, now)
		switch a.Kind {
		case AlertOverdue:
			out.Overdue = append(out.Overdue, a)
		case AlertDueSoon:
			out.DueSoon = append(out.DueSoon, a)
		}
	}
	return out
}

// BalancePoint is one day of the simulated balance series
type BalancePoint struct {
	Date          domain.Date
	Balance       float64
	DailyIncome   float64
	DailyExpenses float64
}

// expenseRatio is the share of average daily income booked as expenses
const expenseRatio = 0.3

// BalanceGenerator synthesizes the balance history shown on the dashboard
// chart. It is a display fixture, not a ledger.
type BalanceGenerator struct {
	Days int

	// Rand enables the ±5% daily perturbation. Nil keeps the series
	// reproducible.
	Rand *rand.Rand
}

// Generate returns Days points ending today, oldest first
func (g BalanceGenerator) Generate(clients []*domain.Client, today domain.Date) []BalancePoint {
	days := g.Days
	if days <= 0 {
		days = 30
	}

	var monthly decimal.Decimal
	for _, c := range clients {
		if c.IsActive() {
			monthly = monthly.Add(c.MonthlyFee)
		}
	}
	totalMonthlyIncome := monthly.InexactFloat64()
	dailyAverage := totalMonthlyIncome / 30
	dailyExpenses := dailyAverage * expenseRatio
	floor := dailyAverage * 0.5

	balance := totalMonthlyIncome * 2
	points := make([]BalancePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDays(-i)

		var income decimal.Decimal
		for _, c := range clients {
			if c.IsActive() && !c.PaymentDate.IsZero() && c.PaymentDate.Day == date.Day {
				income = income.Add(c.MonthlyFee)
			}
		}
		dailyIncome := income.InexactFloat64()

		var variation float64
		if g.Rand != nil {
			variation = (g.Rand.Float64() - 0.5) * dailyAverage * 0.1
		}

		balance = math.Max(balance+dailyIncome-dailyExpenses+variation, floor)
		points = append(points, BalancePoint{
			Date:          date,
			Balance:       balance,
			DailyIncome:   dailyIncome,
			DailyExpenses: dailyExpenses,
		})
	}
	return points
}

// Window returns the last n points of series, or all of them when n is
// larger than the series
func Window(series []BalancePoint, n int) []BalancePoint {
	if n <= 0 || n >= len(series) {
		return series
	}
	return series[len(series)-n:]
}
