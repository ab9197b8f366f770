package view

import (
	"fmt"
	"strings"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/service"
	"github.com/shopspring/decimal"
)

// Format carries the display settings for rows.
type Format struct {
	CurrencySymbol string
	DateLayout     string
}

// DefaultFormat matches the default configuration.
var DefaultFormat = Format{CurrencySymbol: "S/", DateLayout: "02/01/2006"}

// ClientRow is one line of the client table.
type ClientRow struct {
	ID          string
	DNI         string
	Name        string
	Phone       string
	Description string
	PaymentDate string
	MonthlyFee  string
	Status      domain.Status
	StatusLabel string
}

// ClientRows filters the roster and maps each match to a table row.
func ClientRows(clients []*domain.Client, search string, status domain.Status, f Format) []ClientRow {
	return Rows(FilterClients(clients, search, status), f)
}

// Rows maps already filtered clients to table rows.
func Rows(clients []*domain.Client, f Format) []ClientRow {
	rows := make([]ClientRow, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, ClientRow{
			ID:          c.ID,
			DNI:         orNA(c.DNI),
			Name:        c.Name,
			Phone:       c.Phone,
			Description: orNA(c.Description),
			PaymentDate: c.PaymentDate.Format(f.DateLayout),
			MonthlyFee:  FormatMoney(c.MonthlyFee, f.CurrencySymbol),
			Status:      c.Status,
			StatusLabel: c.Status.Label(),
		})
	}
	return rows
}

// AlertRow is one entry of an alert list.
type AlertRow struct {
	ClientID string
	Name     string
	Detail   string // phone and fee
	Days     int
	Label    string
}

// AlertRows maps both alert lists to display rows.
func AlertRows(alerts service.Alerts, f Format) (overdue, dueSoon []AlertRow) {
	for _, a := range alerts.Overdue {
		overdue = append(overdue, alertRow(a, f, fmt.Sprintf("%s overdue", days(a.Days))))
	}
	for _, a := range alerts.DueSoon {
		label := fmt.Sprintf("%s left", days(a.Days))
		if a.Days == 0 {
			label = "due today"
		}
		dueSoon = append(dueSoon, alertRow(a, f, label))
	}
	return overdue, dueSoon
}

func alertRow(a service.Alert, f Format, label string) AlertRow {
	return AlertRow{
		ClientID: a.Client.ID,
		Name:     a.Client.Name,
		Detail:   fmt.Sprintf("%s - %s", a.Client.Phone, FormatMoney(a.Client.MonthlyFee, f.CurrencySymbol)),
		Days:     a.Days,
		Label:    label,
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// Metric is one labeled number on the stats panel.
type Metric struct {
	Label string
	Value string
}

// StatsPanel returns the four dashboard metrics in display order.
func StatsPanel(s service.Stats, f Format) []Metric {
	return []Metric{
		{Label: "Total clients", Value: fmt.Sprint(s.TotalClients)},
		{Label: "Active clients", Value: fmt.Sprint(s.ActiveClients)},
		{Label: "Monthly revenue", Value: FormatMoney(s.TotalRevenue, f.CurrencySymbol)},
		{Label: "Delinquent", Value: fmt.Sprint(s.DelinquentCount)},
	}
}

// FormatMoney formats an amount as "S/ 1,234.50".
func FormatMoney(amount decimal.Decimal, symbol string) string {
	s := amount.Abs().StringFixed(2)
	intPart, decPart := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	if symbol == "" {
		return sign + b.String() + decPart
	}
	return sign + symbol + " " + b.String() + decPart
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
