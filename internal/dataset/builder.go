package dataset

import (
	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

// Build consolidates accepted daily batches into the canonical dataset:
// every source record carrying its resolved broker key, plus exactly one
// Total Market row per date.
//
// Build is a full rebuild every time; nothing is persisted or patched
// incrementally. Zero batches yield the explicit empty dataset, never an
// error — queries against it short-circuit to "no data".
func Build(batches []models.DailyBatch) *models.Dataset {
	if len(batches) == 0 {
		return models.EmptyDataset()
	}

	names := ResolveBrokerNames(batches)

	var rows []models.CanonicalRow
	for _, b := range batches {
		for _, rec := range b.Records {
			rows = append(rows, models.CanonicalRow{
				Date:       b.Date,
				BrokerKey:  BrokerKey(rec.BrokerCode, names),
				BrokerCode: rec.BrokerCode,
				Volume:     rec.Volume,
				Value:      rec.Value,
				Frequency:  rec.Frequency,
			})
		}
	}

	rows = append(rows, MarketRows(rows)...)
	return models.NewDataset(rows)
}
