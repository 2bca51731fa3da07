package dto

// SummaryRow is one row of the GET /api/v1/summary response.
//
// Date is already formatted for the requested granularity
// ("2 Jan 2006", "Jan 2006" or "2006"); Value and Percentage carry the
// raw numbers so clients can sort and chart without re-parsing.
//
// swagger:model SummaryRow
type SummaryRow struct {
	Date       string  `json:"date" example:"2 Jan 2024"`
	Broker     string  `json:"broker" example:"YP_Mirae Asset Sekuritas"`
	Field      string  `json:"field" example:"value"`
	Value      int64   `json:"value" example:"1250000000"`
	Percentage float64 `json:"percentage" example:"12.34"`
}

// SummaryResponse wraps the result rows of a summary query.
//
// swagger:model SummaryResponse
type SummaryResponse struct {
	Rows  []SummaryRow `json:"rows"`
	Count int          `json:"count" example:"42"`
}
