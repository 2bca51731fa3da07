package models

import (
	"sort"
	"time"
)

const (
	// TotalBrokerCode is the synthetic broker code carried by the
	// per-date Total Market row.
	TotalBrokerCode = "TOTAL"

	// TotalBrokerKey is the resolved identity of the Total Market row.
	TotalBrokerKey = "Total Market"

	// BrokerKeySeparator joins a broker code with its latest known name
	// to form the stable broker key (e.g. "YP_Mirae Asset Sekuritas").
	BrokerKeySeparator = "_"

	// UnknownBrokerName is the fallback used when identity resolution
	// finds a code without any usable display name.
	UnknownBrokerName = "Unknown"
)

// CanonicalRow is one row of the consolidated dataset: one broker on one
// date, or the synthetic Total Market row for that date.
type CanonicalRow struct {
	Date       time.Time
	BrokerKey  string
	BrokerCode string
	Volume     int64
	Value      int64
	Frequency  int64
}

// Get returns the numeric field selected by f.
func (r CanonicalRow) Get(f Field) int64 {
	switch f {
	case FieldVolume:
		return r.Volume
	case FieldFrequency:
		return r.Frequency
	default:
		return r.Value
	}
}

// IsTotal reports whether the row is the synthetic Total Market row.
func (r CanonicalRow) IsTotal() bool {
	return r.BrokerCode == TotalBrokerCode
}

// Dataset is the immutable consolidated table every query runs against.
// It is a derived view: rebuilt in full from the source files whenever
// they change, never mutated in place. The zero-row dataset is valid and
// signals "no data" to callers.
type Dataset struct {
	rows []CanonicalRow
}

// NewDataset builds a dataset from canonical rows. Rows are sorted by
// date ascending, Total Market first within a date, then by broker key,
// so repeated builds from the same input are identical.
func NewDataset(rows []CanonicalRow) *Dataset {
	sorted := append([]CanonicalRow(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.IsTotal() != b.IsTotal() {
			return a.IsTotal()
		}
		return a.BrokerKey < b.BrokerKey
	})
	return &Dataset{rows: sorted}
}

// EmptyDataset returns the explicit "no data" dataset.
func EmptyDataset() *Dataset {
	return &Dataset{}
}

// Empty reports whether the dataset holds no rows.
func (d *Dataset) Empty() bool {
	return d == nil || len(d.rows) == 0
}

// Rows returns the canonical rows in stable order. Callers must not
// modify the returned slice.
func (d *Dataset) Rows() []CanonicalRow {
	if d == nil {
		return nil
	}
	return d.rows
}

// Bounds returns the earliest and latest dates present. ok is false for
// an empty dataset.
func (d *Dataset) Bounds() (min, max time.Time, ok bool) {
	if d.Empty() {
		return time.Time{}, time.Time{}, false
	}
	return d.rows[0].Date, d.rows[len(d.rows)-1].Date, true
}

// BrokerKeys returns the distinct broker keys present, Total Market
// first if it exists, the rest in ascending order.
func (d *Dataset) BrokerKeys() []string {
	if d.Empty() {
		return nil
	}
	seen := make(map[string]struct{}, 64)
	var keys []string
	hasTotal := false
	for _, r := range d.rows {
		if _, ok := seen[r.BrokerKey]; ok {
			continue
		}
		seen[r.BrokerKey] = struct{}{}
		if r.BrokerKey == TotalBrokerKey {
			hasTotal = true
			continue
		}
		keys = append(keys, r.BrokerKey)
	}
	sort.Strings(keys)
	if hasTotal {
		keys = append([]string{TotalBrokerKey}, keys...)
	}
	return keys
}
