package models

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the time-bucketing level of a query.
type Granularity int

const (
	Daily Granularity = iota
	Monthly
	Yearly
)

// String returns the wire name of the granularity.
func (g Granularity) String() string {
	switch g {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

// ParseGranularity maps a wire name to a Granularity. An empty string
// defaults to Daily.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily":
		return Daily, nil
	case "monthly":
		return Monthly, nil
	case "yearly":
		return Yearly, nil
	default:
		return 0, fmt.Errorf("unknown granularity %q", s)
	}
}

// Bucket truncates a date to the start of its containing period.
// Daily is the identity.
func (g Granularity) Bucket(d time.Time) time.Time {
	switch g {
	case Monthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(d.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
}

// FormatDate renders a bucketed date the way the export and the UI show
// it: "2 Jan 2006" for daily, "Jan 2006" for monthly, "2006" for yearly.
func (g Granularity) FormatDate(d time.Time) string {
	switch g {
	case Monthly:
		return d.Format("Jan 2006")
	case Yearly:
		return d.Format("2006")
	default:
		return d.Format("2 Jan 2006")
	}
}
