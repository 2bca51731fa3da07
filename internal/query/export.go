package query

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/idxpulse/brokerpulse/internal/domain/models"
)

// csvHeader matches the downloadable table of the summary view.
var csvHeader = []string{"Date", "Broker", "Field", "Value", "%"}

// WriteCSV renders query rows as the delimited export the UI offers for
// download: date formatted per granularity, raw broker key and field
// name, value with thousand separators, percentage with two decimals.
func WriteCSV(w io.Writer, rows []models.QueryRow, g models.Granularity) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			g.FormatDate(r.Date),
			r.BrokerKey,
			r.Field.String(),
			FormatAmount(r.Value),
			fmt.Sprintf("%.2f%%", r.Percentage),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatAmount renders an integer with comma thousand separators, the
// way the summary table displays values.
func FormatAmount(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
