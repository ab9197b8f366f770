// Package view maps the roster and its derived data to plain display rows.
// Nothing here knows about terminals or styling.
package view

import (
	"strings"
	"unicode"

	"github.com/andy/rebancariza/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normalizes s for search: accents are stripped and case is folded, so
// "María" and "maria" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// Matches reports whether c passes the search term and status filter. An
// empty term or status matches everything.
func Matches(c *domain.Client, search string, status domain.Status) bool {
	if status != "" && c.Status != status {
		return false
	}
	term := Fold(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	for _, field := range []string{c.Name, c.Phone, c.DNI, c.Description} {
		if strings.Contains(Fold(field), term) {
			return true
		}
	}
	return false
}

// FilterClients returns the clients matching search and status in their
// original order.
func FilterClients(clients []*domain.Client, search string, status domain.Status) []*domain.Client {
	out := make([]*domain.Client, 0, len(clients))
	for _, c := range clients {
		if Matches(c, search, status) {
			out = append(out, c)
		}
	}
	return out
}

// StatusFilterLabel names a status filter value, "All" for the empty filter.
func StatusFilterLabel(status domain.Status) string {
	if status == "" {
		return "All"
	}
	return cases.Title(language.English).String(string(status))
}

// NextStatusFilter cycles "" -> active -> delinquent -> "".
func NextStatusFilter(status domain.Status) domain.Status {
	switch status {
	case "":
		return domain.StatusActive
	case domain.StatusActive:
		return domain.StatusDelinquent
	default:
		return ""
	}
}
