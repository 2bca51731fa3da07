package ingestion

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

// requiredColumns is the fixed input contract of the IDX broker-summary
// export. Column names are matched exactly after trimming surrounding
// whitespace; order and extra columns do not matter.
var requiredColumns = []string{
	"Kode Perusahaan",
	"Nama Perusahaan",
	"Volume",
	"Nilai",
	"Frekuensi",
}

// preferredSheet is tried first; exports normally carry their data on
// the default sheet. If absent, the first sheet of the workbook is used.
const preferredSheet = "Sheet1"

var dateToken = regexp.MustCompile(`\d{8}`)

// ParseFile turns one raw .xlsx file into a DailyBatch or a *RejectError.
//
// Behavior:
//   - The record date is the first valid YYYYMMDD token in the file
//     name; a missing or non-calendar token rejects the file.
//   - The required column set must be present (trimmed exact match).
//   - Volume/Nilai/Frekuensi cells are coerced to non-negative integers.
//     A non-coercible cell rejects the whole file, unless salvageRows is
//     set, in which case only the offending row is dropped.
//   - Rows with an empty broker code or name after trimming are dropped.
//   - A file with zero valid rows after validation is rejected whole.
//
// ParseFile is a pure transform: it never touches storage and every
// failure is recoverable at the caller level.
func ParseFile(name string, data []byte, salvageRows bool) (*models.DailyBatch, error) {
	date, err := dateFromName(name)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, rejectf(ReasonUnreadableFile, "open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheet := preferredSheet
	list := f.GetSheetList()
	if len(list) == 0 {
		return nil, rejectf(ReasonEmptyFile, "workbook has no sheets")
	}
	if !containsSheet(list, preferredSheet) {
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, rejectf(ReasonUnreadableFile, "read sheet %s: %v", sheet, err)
	}
	if len(rows) < 2 {
		return nil, rejectf(ReasonEmptyFile, "sheet %s has no data rows", sheet)
	}

	cols, missing := mapColumns(rows[0])
	if len(missing) > 0 {
		return nil, rejectf(ReasonMissingColumns, "missing columns: %s", strings.Join(missing, ", "))
	}

	records := make([]models.SourceRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		code := strings.TrimSpace(cell(row, cols["Kode Perusahaan"]))
		broker := strings.TrimSpace(cell(row, cols["Nama Perusahaan"]))
		if code == "" || broker == "" {
			continue
		}

		rec := models.SourceRecord{BrokerCode: code, BrokerName: broker}
		ok := true
		for col, dst := range map[string]*int64{
			"Volume":    &rec.Volume,
			"Nilai":     &rec.Value,
			"Frekuensi": &rec.Frequency,
		} {
			v, convErr := coerceAmount(cell(row, cols[col]))
			if convErr != nil {
				if salvageRows {
					ok = false
					break
				}
				return nil, rejectf(ReasonNonNumericField, "row %d, column %s: %v", i+2, col, convErr)
			}
			*dst = v
		}
		if ok {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, rejectf(ReasonEmptyFile, "no valid rows after validation")
	}

	return &models.DailyBatch{Date: date, File: name, Records: records}, nil
}

// dateFromName extracts the authoritative record date from the file
// name. Every 8-digit token is tried in order; the first one that is a
// real calendar date wins.
func dateFromName(name string) (time.Time, error) {
	for _, tok := range dateToken.FindAllString(name, -1) {
		if d, err := time.Parse("20060102", tok); err == nil {
			return d, nil
		}
	}
	return time.Time{}, rejectf(ReasonInvalidDateToken, "no YYYYMMDD token in %q", name)
}

// mapColumns resolves header names to column indexes and reports any
// required column that is absent.
func mapColumns(header []string) (map[string]int, []string) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	cols := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	return cols, missing
}

// cell returns the trimmed-length-safe cell value; excelize omits
// trailing empty cells, so short rows are common.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// coerceAmount parses a numeric cell into a non-negative int64. Thousand
// separators are tolerated; spreadsheet floats are accepted only when
// integral (e.g. "1234567.0").
func coerceAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("negative value %d", v)
		}
		return v, nil
	}
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if fv < 0 || fv != float64(int64(fv)) {
		return 0, fmt.Errorf("not a non-negative integer: %q", s)
	}
	return int64(fv), nil
}

func containsSheet(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
