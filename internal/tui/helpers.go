package tui

import (
	"strings"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// padRight pads s with spaces to width display cells
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func statusStyle(s domain.Status) lipgloss.Style {
	if s == domain.StatusDelinquent {
		return delinquentStyle
	}
	return activeStyle
}
