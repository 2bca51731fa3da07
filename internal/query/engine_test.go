package query

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/idxpulse/brokerpulse/internal/dataset"
	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// twoBrokerDataset: one date, YP volume 100, PD volume 300, market 400.
func twoBrokerDataset() *models.Dataset {
	return dataset.Build([]models.DailyBatch{
		{
			Date: day(2024, 1, 1),
			File: "20240101.xlsx",
			Records: []models.SourceRecord{
				{BrokerCode: "YP", BrokerName: "Mirae", Volume: 100, Value: 1000, Frequency: 5},
				{BrokerCode: "PD", BrokerName: "Premier", Volume: 300, Value: 3000, Frequency: 15},
			},
		},
	})
}

func TestQuery_DailyShare(t *testing.T) {
	e := NewEngine(false)
	rows, err := e.Query(twoBrokerDataset(), Request{
		Brokers: []string{"YP_Mirae"},
		Fields:  []models.Field{models.FieldVolume},
		From:    day(2024, 1, 1),
		To:      day(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: want 1 got %d", len(rows))
	}
	r := rows[0]
	if r.Value != 100 || !almostEqual(r.Percentage, 25.0) {
		t.Fatalf("want 100 @ 25%%, got %d @ %v", r.Value, r.Percentage)
	}
}

func TestQuery_DenominatorIgnoresSelection(t *testing.T) {
	e := NewEngine(false)
	req := Request{
		Brokers: []string{"YP_Mirae"},
		Fields:  []models.Field{models.FieldVolume},
		From:    day(2024, 1, 1),
		To:      day(2024, 1, 1),
	}
	solo, err := e.Query(twoBrokerDataset(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	req.Brokers = []string{"YP_Mirae", "PD_Premier"}
	both, err := e.Query(twoBrokerDataset(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var ypSolo, ypBoth float64
	ypSolo = solo[0].Percentage
	for _, r := range both {
		if r.BrokerKey == "YP_Mirae" {
			ypBoth = r.Percentage
		}
	}
	if !almostEqual(ypSolo, ypBoth) {
		t.Fatalf("selection moved the percentage: %v vs %v", ypSolo, ypBoth)
	}
}

func TestQuery_TotalMarketIsHundredPercent(t *testing.T) {
	e := NewEngine(false)
	rows, err := e.Query(twoBrokerDataset(), Request{
		Brokers: []string{models.TotalBrokerKey},
		Fields:  []models.Field{models.FieldVolume},
		From:    day(2024, 1, 1),
		To:      day(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 || !almostEqual(rows[0].Percentage, 100.0) {
		t.Fatalf("Total Market must be 100%%: %+v", rows)
	}
}

// asymmetricMonth: Jan 1 market 100 with YP 50 (ratio 50%), Jan 2 market
// 900 with YP 90 (ratio 10%). Sum-then-ratio = 140/1000 = 14%; mean of
// ratios = 30%.
func asymmetricMonth() *models.Dataset {
	return dataset.Build([]models.DailyBatch{
		{
			Date: day(2024, 1, 1),
			File: "20240101.xlsx",
			Records: []models.SourceRecord{
				{BrokerCode: "YP", BrokerName: "Mirae", Volume: 50},
				{BrokerCode: "PD", BrokerName: "Premier", Volume: 50},
			},
		},
		{
			Date: day(2024, 1, 2),
			File: "20240102.xlsx",
			Records: []models.SourceRecord{
				{BrokerCode: "YP", BrokerName: "Mirae", Volume: 90},
				{BrokerCode: "PD", BrokerName: "Premier", Volume: 810},
			},
		},
	})
}

func TestQuery_MonthlySumThenRatio(t *testing.T) {
	e := NewEngine(false)
	rows, err := e.Query(asymmetricMonth(), Request{
		Brokers:     []string{"YP_Mirae"},
		Fields:      []models.Field{models.FieldVolume},
		From:        day(2024, 1, 1),
		To:          day(2024, 1, 31),
		Granularity: models.Monthly,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: want 1 got %d", len(rows))
	}
	r := rows[0]
	if r.Value != 140 {
		t.Fatalf("monthly sum: want 140 got %d", r.Value)
	}
	if !almostEqual(r.Percentage, 14.0) {
		t.Fatalf("sum-then-ratio: want 14%% got %v", r.Percentage)
	}
	if !r.Date.Equal(day(2024, 1, 1)) {
		t.Fatalf("monthly bucket must be month start: %v", r.Date)
	}
}

func TestQuery_MeanOfRatiosVariant(t *testing.T) {
	e := NewEngine(true)
	rows, err := e.Query(asymmetricMonth(), Request{
		Brokers:     []string{"YP_Mirae"},
		Fields:      []models.Field{models.FieldVolume},
		From:        day(2024, 1, 1),
		To:          day(2024, 1, 31),
		Granularity: models.Monthly,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !almostEqual(rows[0].Percentage, 30.0) {
		t.Fatalf("mean of ratios: want 30%% got %v", rows[0].Percentage)
	}
}

func TestQuery_Validation(t *testing.T) {
	e := NewEngine(false)
	ds := twoBrokerDataset()

	cases := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "no brokers",
			req:  Request{Fields: []models.Field{models.FieldVolume}, From: day(2024, 1, 1), To: day(2024, 1, 1)},
			want: ErrInvalidQuery,
		},
		{
			name: "no fields",
			req:  Request{Brokers: []string{"YP_Mirae"}, From: day(2024, 1, 1), To: day(2024, 1, 1)},
			want: ErrInvalidQuery,
		},
		{
			name: "inverted range",
			req:  Request{Brokers: []string{"YP_Mirae"}, Fields: []models.Field{models.FieldVolume}, From: day(2024, 2, 1), To: day(2024, 1, 1)},
			want: ErrInvalidDateRange,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := e.Query(ds, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestQuery_EmptyDatasetAndEmptyResult(t *testing.T) {
	e := NewEngine(false)
	req := Request{
		Brokers: []string{"YP_Mirae"},
		Fields:  []models.Field{models.FieldVolume},
		From:    day(2024, 1, 1),
		To:      day(2024, 1, 1),
	}

	rows, err := e.Query(models.EmptyDataset(), req)
	if err != nil || len(rows) != 0 {
		t.Fatalf("empty dataset: want empty success, got %v rows, err %v", len(rows), err)
	}

	// A range with no data is also a valid, empty result.
	req.From, req.To = day(2030, 1, 1), day(2030, 1, 2)
	rows, err = e.Query(twoBrokerDataset(), req)
	if err != nil || len(rows) != 0 {
		t.Fatalf("out-of-range: want empty success, got %v rows, err %v", len(rows), err)
	}
}

func TestQuery_ZeroDenominator(t *testing.T) {
	ds := dataset.Build([]models.DailyBatch{
		{
			Date: day(2024, 1, 1),
			File: "20240101.xlsx",
			Records: []models.SourceRecord{
				{BrokerCode: "YP", BrokerName: "Mirae", Volume: 0},
				{BrokerCode: "PD", BrokerName: "Premier", Volume: 0},
			},
		},
	})
	e := NewEngine(false)
	rows, err := e.Query(ds, Request{
		Brokers: []string{"YP_Mirae"},
		Fields:  []models.Field{models.FieldVolume},
		From:    day(2024, 1, 1),
		To:      day(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rows[0].Percentage != 0.0 {
		t.Fatalf("zero market must yield 0.0, got %v", rows[0].Percentage)
	}
}

func TestQuery_RowOrdering(t *testing.T) {
	e := NewEngine(false)
	rows, err := e.Query(twoBrokerDataset(), Request{
		Brokers: []string{"YP_Mirae", "PD_Premier", models.TotalBrokerKey},
		Fields:  []models.Field{models.FieldValue, models.FieldVolume},
		From:    day(2024, 1, 1),
		To:      day(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("rows: want 6 got %d", len(rows))
	}
	if rows[0].BrokerKey != models.TotalBrokerKey {
		t.Fatalf("Total Market must sort first, got %s", rows[0].BrokerKey)
	}
	if rows[0].Field != models.FieldVolume || rows[1].Field != models.FieldValue {
		t.Fatalf("fields must follow canonical order: %v, %v", rows[0].Field, rows[1].Field)
	}
	if rows[2].BrokerKey != "PD_Premier" || rows[4].BrokerKey != "YP_Mirae" {
		t.Fatalf("brokers must sort by key: %s, %s", rows[2].BrokerKey, rows[4].BrokerKey)
	}
}

func TestRank(t *testing.T) {
	ds := dataset.Build([]models.DailyBatch{
		{
			Date: day(2024, 1, 1),
			File: "20240101.xlsx",
			Records: []models.SourceRecord{
				{BrokerCode: "YP", BrokerName: "Mirae", Volume: 100},
				{BrokerCode: "PD", BrokerName: "Premier", Volume: 300},
				{BrokerCode: "CC", BrokerName: "Mandiri", Volume: 100},
			},
		},
	})

	e := NewEngine(false)
	rows, err := e.Rank(ds, models.FieldVolume, day(2024, 1, 1), day(2024, 1, 31))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows: want 3 got %d", len(rows))
	}

	// Top broker, then the tie broken by broker key with distinct ranks.
	if rows[0].BrokerKey != "PD_Premier" || rows[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].BrokerKey != "CC_Mandiri" || rows[1].Rank != 2 {
		t.Fatalf("tie must break by key: %+v", rows[1])
	}
	if rows[2].BrokerKey != "YP_Mirae" || rows[2].Rank != 3 {
		t.Fatalf("tie must take the next rank: %+v", rows[2])
	}

	// Shares divide by the ranked population sum (500), not Total Market.
	if !almostEqual(rows[0].MarketShare, 60.0) || !almostEqual(rows[1].MarketShare, 20.0) {
		t.Fatalf("unexpected shares: %v, %v", rows[0].MarketShare, rows[1].MarketShare)
	}
}

func TestRank_ExcludesTotalMarket(t *testing.T) {
	e := NewEngine(false)
	rows, err := e.Rank(twoBrokerDataset(), models.FieldVolume, day(2024, 1, 1), day(2024, 1, 1))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, r := range rows {
		if r.BrokerKey == models.TotalBrokerKey {
			t.Fatal("Total Market must never be ranked")
		}
	}
}

func TestRank_Validation(t *testing.T) {
	e := NewEngine(false)
	if _, err := e.Rank(twoBrokerDataset(), models.FieldVolume, day(2024, 2, 1), day(2024, 1, 1)); !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("want ErrInvalidDateRange got %v", err)
	}
	rows, err := e.Rank(models.EmptyDataset(), models.FieldVolume, day(2024, 1, 1), day(2024, 1, 2))
	if err != nil || len(rows) != 0 {
		t.Fatalf("empty dataset: want empty success, got %v rows, err %v", len(rows), err)
	}
}

func TestComputeShare(t *testing.T) {
	cases := []struct {
		num, den int64
		want     float64
	}{
		{100, 400, 25.0},
		{400, 400, 100.0},
		{0, 400, 0.0},
		{100, 0, 0.0},
		{1, 3, 100.0 / 3.0},
	}
	for _, tc := range cases {
		if got := ComputeShare(tc.num, tc.den); !almostEqual(got, tc.want) {
			t.Fatalf("ComputeShare(%d, %d): want %v got %v", tc.num, tc.den, got, tc.want)
		}
	}
}
