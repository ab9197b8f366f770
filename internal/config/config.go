package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ChartWindows are the selectable chart time windows in days.
var ChartWindows = []int{7, 30, 90}

type Config struct {
	// Database settings
	Database DatabaseConfig `yaml:"database"`

	// Display formatting
	Display DisplayConfig `yaml:"display"`

	Alerts AlertsConfig `yaml:"alerts"`
	Chart  ChartConfig  `yaml:"chart"`

	Logging LoggingConfig `yaml:"logging"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // Path to the encrypted SQLite database
}

type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"` // Prefix for amounts, e.g. "S/"
	DateFormat     string `yaml:"date_format"`     // Go time layout for dates in tables
	Theme          string `yaml:"theme"`           // Theme used until one is stored
}

type AlertsConfig struct {
	DueSoonDays int `yaml:"due_soon_days"` // Payments due within this many days are flagged
}

type ChartConfig struct {
	WindowDays  int   `yaml:"window_days"`  // One of 7, 30, 90
	HistoryDays int   `yaml:"history_days"` // Length of the generated balance series
	Jitter      bool  `yaml:"jitter"`       // Add the ±5% random perturbation
	Seed        int64 `yaml:"seed"`         // Perturbation seed, 0 = time based
}

type LoggingConfig struct {
	Level string `yaml:"level"` // trace, debug, info, warn, error
	Path  string `yaml:"path"`  // Log file; the TUI owns stdout
}

// Dir returns ~/.config/rebancariza, honoring XDG_CONFIG_HOME
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rebancariza")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "rebancariza")
	}
	return filepath.Join(homeDir, ".config", "rebancariza")
}

// DefaultConfigPath returns ~/.config/rebancariza/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "rebancariza.db"),
		},
		Display: DisplayConfig{
			CurrencySymbol: "S/",
			DateFormat:     "02/01/2006",
			Theme:          "light",
		},
		Alerts: AlertsConfig{
			DueSoonDays: 5,
		},
		Chart: ChartConfig{
			WindowDays:  30,
			HistoryDays: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
			Path:  filepath.Join(dir, "rebancariza.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Alerts.DueSoonDays < 0 {
		return errors.New("alerts.due_soon_days cannot be negative")
	}
	if !ValidChartWindow(c.Chart.WindowDays) {
		return fmt.Errorf("chart.window_days must be one of %v", ChartWindows)
	}
	if c.Chart.HistoryDays < 2 {
		return errors.New("chart.history_days must be at least 2")
	}
	if c.Display.Theme != "light" && c.Display.Theme != "dark" {
		return fmt.Errorf("display.theme must be light or dark, got %q", c.Display.Theme)
	}
	return nil
}

// ValidChartWindow reports whether days is a selectable chart window
func ValidChartWindow(days int) bool {
	for _, w := range ChartWindows {
		if w == days {
			return true
		}
	}
	return false
}

// NextChartWindow returns the window after days, wrapping around
func NextChartWindow(days int) int {
	for i, w := range ChartWindows {
		if w == days {
			return ChartWindows[(i+1)%len(ChartWindows)]
		}
	}
	return ChartWindows[0]
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the database and log directories
func (c *Config) EnsureDirectories() error {
	for _, p := range []string{c.Database.Path, c.Logging.Path} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
			return err
		}
	}
	return nil
}
