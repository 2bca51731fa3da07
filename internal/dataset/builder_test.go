package dataset

import (
	"reflect"
	"testing"

	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

func TestBuild_TwoFilesSameDate(t *testing.T) {
	d := day(2024, 1, 1)
	batches := []models.DailyBatch{
		batch(d, "20240101_a.xlsx", rec("YP", "Mirae Asset", 100, 1000, 5)),
		batch(d, "20240101_b.xlsx", rec("PD", "Indo Premier", 300, 3000, 15)),
	}

	ds := Build(batches)
	rows := ds.Rows()
	if len(rows) != 3 {
		t.Fatalf("rows: want 3 got %d", len(rows))
	}

	// Total Market sorts first within the date.
	total := rows[0]
	if !total.IsTotal() {
		t.Fatalf("first row must be Total Market, got %+v", total)
	}
	if total.Volume != 400 || total.Value != 4000 || total.Frequency != 20 {
		t.Fatalf("total sums wrong: %+v", total)
	}
	if rows[1].BrokerKey != "PD_Indo Premier" || rows[2].BrokerKey != "YP_Mirae Asset" {
		t.Fatalf("unexpected broker order: %s, %s", rows[1].BrokerKey, rows[2].BrokerKey)
	}
}

func TestBuild_NameChangeRelabelsHistory(t *testing.T) {
	batches := []models.DailyBatch{
		batch(day(2024, 1, 1), "a", rec("YP", "Old Name", 100, 1000, 5)),
		batch(day(2024, 2, 1), "b", rec("YP", "New Name", 50, 500, 2)),
	}

	ds := Build(batches)
	for _, r := range ds.Rows() {
		if r.IsTotal() {
			continue
		}
		if r.BrokerKey != "YP_New Name" {
			t.Fatalf("history must carry the latest name: %+v", r)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	ds := Build(nil)
	if !ds.Empty() {
		t.Fatal("expected empty dataset")
	}
	if _, _, ok := ds.Bounds(); ok {
		t.Fatal("empty dataset must have no bounds")
	}
}

func TestBuild_RebuildIsIdentical(t *testing.T) {
	batches := []models.DailyBatch{
		batch(day(2024, 1, 1), "a",
			rec("YP", "Mirae Asset", 100, 1000, 5),
			rec("PD", "Indo Premier", 300, 3000, 15)),
		batch(day(2024, 1, 2), "b", rec("YP", "Mirae Asset", 50, 500, 2)),
	}

	first := Build(batches)
	second := Build(batches)
	if !reflect.DeepEqual(first.Rows(), second.Rows()) {
		t.Fatal("rebuild from the same batches must be identical")
	}
}

func TestBuild_BrokerKeys(t *testing.T) {
	batches := []models.DailyBatch{
		batch(day(2024, 1, 1), "a",
			rec("YP", "Mirae Asset", 100, 1000, 5),
			rec("PD", "Indo Premier", 300, 3000, 15)),
	}
	ds := Build(batches)
	keys := ds.BrokerKeys()
	want := []string{models.TotalBrokerKey, "PD_Indo Premier", "YP_Mirae Asset"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys: want %v got %v", want, keys)
	}
}
