package models

import (
	"time"
)

// Market and selection identifiers for the only market modeled so far.
const (
	MarketTotalGoals = "total_goals_over_under"

	SelectionOver  = "over"
	SelectionUnder = "under"
)

// MarketQuote is one bookmaker price for an over/under goals line.
// Thresholds are half-integers (1.5, 2.5, ...) so no push case exists.
type MarketQuote struct {
	FixtureExternalID int64     `json:"fixture_external_id"`
	Bookmaker         string    `json:"bookmaker"`
	MarketType        string    `json:"market_type"`
	Threshold         float64   `json:"threshold"`
	Selection         string    `json:"selection"`
	DecimalOdd        float64   `json:"decimal_odd"`
	CapturedAt        time.Time `json:"captured_at"`
}
