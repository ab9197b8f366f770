package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andy/rebancariza/internal/service"
	"github.com/andy/rebancariza/internal/view"
)

// Settings are the display preferences editable from the settings screen.
type Settings struct {
	CurrencySymbol string
	DateFormat     string
	DueSoonDays    int
}

// Settings returns the current display preferences.
func (a *App) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Settings{
		CurrencySymbol: a.Config.Display.CurrencySymbol,
		DateFormat:     a.Config.Display.DateFormat,
		DueSoonDays:    a.Config.Alerts.DueSoonDays,
	}
}

// ApplySettings validates s, writes it to the config file and uses it for
// every later render. Nothing changes when the file cannot be written.
func (a *App) ApplySettings(s Settings) error {
	s.CurrencySymbol = strings.TrimSpace(s.CurrencySymbol)
	s.DateFormat = strings.TrimSpace(s.DateFormat)
	if s.DateFormat == "" {
		return errors.New("date format is required")
	}
	if s.DueSoonDays < 0 {
		return errors.New("due soon days cannot be negative")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	next := *a.Config
	next.Display.CurrencySymbol = s.CurrencySymbol
	next.Display.DateFormat = s.DateFormat
	next.Alerts.DueSoonDays = s.DueSoonDays
	if err := next.Validate(); err != nil {
		return err
	}
	if err := next.Save(a.ConfigPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	*a.Config = next
	a.Format = view.Format{CurrencySymbol: s.CurrencySymbol, DateLayout: s.DateFormat}
	a.Alerts = service.AlertEngine{DueSoonDays: s.DueSoonDays}
	a.Log.Info().
		Str("currency_symbol", s.CurrencySymbol).
		Str("date_format", s.DateFormat).
		Int("due_soon_days", s.DueSoonDays).
		Msg("settings saved")
	return nil
}
