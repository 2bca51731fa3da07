package dataset

import (
	"time"

	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

// MarketRows computes one synthetic Total Market row per distinct date:
// the sum of every real broker's numeric fields on that date. Totals are
// always full-universe sums, computed before any broker filtering ever
// happens, so they serve as the fixed percentage denominator no matter
// which subset a query later selects.
func MarketRows(rows []models.CanonicalRow) []models.CanonicalRow {
	totals := make(map[time.Time]*models.CanonicalRow, 64)
	var order []time.Time

	for _, r := range rows {
		if r.IsTotal() {
			continue
		}
		t, ok := totals[r.Date]
		if !ok {
			t = &models.CanonicalRow{
				Date:       r.Date,
				BrokerKey:  models.TotalBrokerKey,
				BrokerCode: models.TotalBrokerCode,
			}
			totals[r.Date] = t
			order = append(order, r.Date)
		}
		t.Volume += r.Volume
		t.Value += r.Value
		t.Frequency += r.Frequency
	}

	out := make([]models.CanonicalRow, 0, len(order))
	for _, d := range order {
		out = append(out, *totals[d])
	}
	return out
}
