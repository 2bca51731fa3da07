// Package dataset consolidates accepted daily batches into the
// canonical table all queries run against: identity resolution, Total
// Market synthesis, and assembly into an immutable Dataset snapshot.
package dataset

import (
	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

// ResolveBrokerNames reduces the batch history to the latest known
// display name per broker code. A code appearing on several dates takes
// the name from the maximum date; at equal dates the batch later in the
// input order wins, so callers passing batches in their stable
// (date, file) order get identical results on every rebuild.
func ResolveBrokerNames(batches []models.DailyBatch) map[string]string {
	latest := make(map[string]models.DailyBatch, 64)
	names := make(map[string]string, 64)

	for _, b := range batches {
		for _, rec := range b.Records {
			if rec.BrokerName == "" {
				continue
			}
			prev, ok := latest[rec.BrokerCode]
			if !ok || !b.Date.Before(prev.Date) {
				latest[rec.BrokerCode] = b
				names[rec.BrokerCode] = rec.BrokerName
			}
		}
	}
	return names
}

// BrokerKey builds the stable composite identity for a code given the
// resolved name map. A code with no usable name falls back to the
// Unknown placeholder instead of failing resolution.
func BrokerKey(code string, names map[string]string) string {
	name := names[code]
	if name == "" {
		name = models.UnknownBrokerName
	}
	return code + models.BrokerKeySeparator + name
}
