package dto

// RankingRow is one row of the GET /api/v1/ranking response.
//
// swagger:model RankingRow
type RankingRow struct {
	Rank        int     `json:"rank" example:"1"`
	Broker      string  `json:"broker" example:"YP_Mirae Asset Sekuritas"`
	Total       int64   `json:"total" example:"98500000000"`
	MarketShare float64 `json:"market_share" example:"8.75"`
}

// RankingResponse wraps a ranking result for one field over a date range.
//
// swagger:model RankingResponse
type RankingResponse struct {
	Field string       `json:"field" example:"value"`
	Rows  []RankingRow `json:"rows"`
}
