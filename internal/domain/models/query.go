package models

import "time"

// QueryRow is one row of a summary query result: one broker, one field,
// one (possibly re-bucketed) date, with its value and its share of the
// full-universe market total for that date/field.
type QueryRow struct {
	Date       time.Time
	BrokerKey  string
	Field      Field
	Value      int64
	Percentage float64
}

// RankingRow is one row of a ranking result. Rank is 1-based and dense:
// equal sums receive consecutive distinct ranks, tie-broken by broker
// key ascending. MarketShare is the broker's share of the sum over the
// whole ranked population.
type RankingRow struct {
	Rank        int
	BrokerKey   string
	Total       int64
	MarketShare float64
}
