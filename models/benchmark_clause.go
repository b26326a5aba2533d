package models

import "github.com/google/uuid"

// BenchmarkClause is a seeded reference row describing the market-typical
// value for a clause type. Read-only at runtime.
type BenchmarkClause struct {
	ID                uuid.UUID `json:"id"`
	ClauseType        string    `json:"clause_type"`
	DocType           string    `json:"doc_type"`
	Industry          string    `json:"industry"`
	Value             string    `json:"value"`
	MarketPercentile  int       `json:"market_percentile"`
	StandardValue     string    `json:"standard_value"`
	IsFavorableToUser bool      `json:"is_favorable_to_user"`
	Note              string    `json:"note"`
}
