package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusDelinquent Status = "delinquent"
)

// Statuses lists the recognized values in display order.
var Statuses = []Status{StatusActive, StatusDelinquent}

// ParseStatus accepts the canonical values and the Spanish ones written by
// the browser version ("activo", "castigo").
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "activo":
		return StatusActive, nil
	case "delinquent", "castigo":
		return StatusDelinquent, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the two recognized statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusDelinquent
}

// Label returns the display label.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusDelinquent:
		return "Delinquent"
	default:
		return string(s)
	}
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
