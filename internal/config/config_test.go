package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "S/", cfg.Display.CurrencySymbol)
	assert.Equal(t, 5, cfg.Alerts.DueSoonDays)
	assert.Equal(t, 30, cfg.Chart.WindowDays)
	assert.Equal(t, 30, cfg.Chart.HistoryDays)
	assert.False(t, cfg.Chart.Jitter)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "display:\n  currency_symbol: \"$\"\nchart:\n  window_days: 7\n  jitter: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "$", cfg.Display.CurrencySymbol)
	assert.Equal(t, "02/01/2006", cfg.Display.DateFormat, "unset keys keep defaults")
	assert.Equal(t, 7, cfg.Chart.WindowDays)
	assert.True(t, cfg.Chart.Jitter)
}

func TestLoad_RejectsUnknownWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart:\n  window_days: 14\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "window_days")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Chart.WindowDays = 90

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestNextChartWindow(t *testing.T) {
	assert.Equal(t, 30, NextChartWindow(7))
	assert.Equal(t, 90, NextChartWindow(30))
	assert.Equal(t, 7, NextChartWindow(90))
	assert.Equal(t, 7, NextChartWindow(12))
}
