// Package query implements the aggregation engine over the canonical
// dataset: filtered summary queries with market-share percentages at
// daily, monthly or yearly granularity, broker rankings, and CSV export.
package query

import (
	"errors"
	"sort"
	"time"

	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

var (
	// ErrInvalidQuery is returned when the broker or field selection is
	// empty. Callers must block such requests, not render empty tables.
	ErrInvalidQuery = errors.New("broker and field selections must be non-empty")

	// ErrInvalidDateRange is returned when from is after to.
	ErrInvalidDateRange = errors.New("date range start is after end")
)

// Request describes one summary query.
type Request struct {
	Brokers     []string       // broker keys to include, non-empty
	Fields      []models.Field // fields to include, non-empty
	From        time.Time      // inclusive
	To          time.Time      // inclusive
	Granularity models.Granularity
}

// Engine runs queries against an immutable dataset snapshot.
//
// meanOfRatios switches period percentages from the recommended
// sum-then-ratio computation (period numerator over period denominator)
// to the arithmetic mean of the broker's daily ratios, matching an older
// pipeline variant. It has no effect at daily granularity.
type Engine struct {
	meanOfRatios bool
}

func NewEngine(meanOfRatios bool) *Engine {
	return &Engine{meanOfRatios: meanOfRatios}
}

// ComputeShare is the single percentage rule of the whole system:
// 100 * num / den, defined as 0.0 when the denominator is zero so a
// dead market day never produces a division error or NaN.
func ComputeShare(num, den int64) float64 {
	if den == 0 {
		return 0.0
	}
	return float64(num) / float64(den) * 100.0
}

type cellKey struct {
	bucket time.Time
	broker string
	field  models.Field
}

type cellAgg struct {
	value      int64
	ratioSum   float64
	ratioCount int
}

type denomKey struct {
	bucket time.Time
	field  models.Field
}

// Query filters the dataset to the requested brokers, fields and date
// range, melts the numeric columns into long form, and attaches each
// row's share of the full-universe market total.
//
// The percentage denominator is always computed from the unfiltered
// dataset: selecting or deselecting brokers never moves another
// broker's percentage. At monthly/yearly granularity values are summed
// into period buckets and percentages recomputed from period-summed
// numerators and denominators (unless the engine was built with
// meanOfRatios).
//
// An empty result after filtering is a valid, successful result.
func (e *Engine) Query(ds *models.Dataset, req Request) ([]models.QueryRow, error) {
	if len(req.Brokers) == 0 || len(req.Fields) == 0 {
		return nil, ErrInvalidQuery
	}
	from, to := dateOnly(req.From), dateOnly(req.To)
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	if ds.Empty() {
		return nil, nil
	}

	selected := make(map[string]struct{}, len(req.Brokers))
	for _, b := range req.Brokers {
		selected[b] = struct{}{}
	}

	// Per-date market totals from the unfiltered dataset, and their
	// per-bucket sums: the fixed denominators.
	dailyDen := make(map[denomKey]int64, 64)
	bucketDen := make(map[denomKey]int64, 64)
	for _, r := range ds.Rows() {
		if !r.IsTotal() || !inRange(r.Date, from, to) {
			continue
		}
		for _, f := range req.Fields {
			dailyDen[denomKey{r.Date, f}] += r.Get(f)
			bucketDen[denomKey{req.Granularity.Bucket(r.Date), f}] += r.Get(f)
		}
	}

	// Melt and aggregate the selected rows into period cells.
	cells := make(map[cellKey]*cellAgg, 256)
	for _, r := range ds.Rows() {
		if !inRange(r.Date, from, to) {
			continue
		}
		if _, ok := selected[r.BrokerKey]; !ok {
			continue
		}
		for _, f := range req.Fields {
			key := cellKey{req.Granularity.Bucket(r.Date), r.BrokerKey, f}
			c, ok := cells[key]
			if !ok {
				c = &cellAgg{}
				cells[key] = c
			}
			v := r.Get(f)
			c.value += v
			c.ratioSum += ComputeShare(v, dailyDen[denomKey{r.Date, f}])
			c.ratioCount++
		}
	}

	out := make([]models.QueryRow, 0, len(cells))
	for key, c := range cells {
		pct := ComputeShare(c.value, bucketDen[denomKey{key.bucket, key.field}])
		if e.meanOfRatios && c.ratioCount > 0 {
			pct = c.ratioSum / float64(c.ratioCount)
		}
		out = append(out, models.QueryRow{
			Date:       key.bucket,
			BrokerKey:  key.broker,
			Field:      key.field,
			Value:      c.value,
			Percentage: pct,
		})
	}

	// Stable presentation order: date ascending, Total Market first
	// within a date, then broker key, then canonical field order.
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		at, bt := a.BrokerKey == models.TotalBrokerKey, b.BrokerKey == models.TotalBrokerKey
		if at != bt {
			return at
		}
		if a.BrokerKey != b.BrokerKey {
			return a.BrokerKey < b.BrokerKey
		}
		return a.Field < b.Field
	})
	return out, nil
}

// Rank sums one field per real broker over the date range, orders the
// sums descending and assigns dense 1-based ranks. Ties take distinct
// consecutive ranks in broker-key order, never duplicates or gaps.
//
// The share denominator is the sum over the ranked population itself,
// not the Total Market rows: the two can differ when Total Market is
// computed on a different basis.
func (e *Engine) Rank(ds *models.Dataset, field models.Field, from, to time.Time) ([]models.RankingRow, error) {
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	if ds.Empty() {
		return nil, nil
	}

	sums := make(map[string]int64, 128)
	for _, r := range ds.Rows() {
		if r.IsTotal() || !inRange(r.Date, from, to) {
			continue
		}
		sums[r.BrokerKey] += r.Get(field)
	}
	if len(sums) == 0 {
		return nil, nil
	}

	rows := make([]models.RankingRow, 0, len(sums))
	var grand int64
	for key, total := range sums {
		rows = append(rows, models.RankingRow{BrokerKey: key, Total: total})
		grand += total
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].BrokerKey < rows[j].BrokerKey
	})
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].MarketShare = ComputeShare(rows[i].Total, grand)
	}
	return rows, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
