package models

import (
	"time"
)

// Value tiers derived from the edge percentage.
const (
	TierStrong = "strong"
	TierWeak   = "weak"
	TierAvoid  = "avoid"

	TierModerate = "moderate"
)

// EdgeAssessment compares a model probability against a market price.
type EdgeAssessment struct {
	Probability float64 `json:"probability"`
	FairOdd     float64 `json:"fair_odd"`
	MarketOdd   float64 `json:"market_odd"`
	EdgePercent float64 `json:"edge_percent"`
	Tier        string  `json:"tier"`
}

// Recommendation is a positive-edge bet surfaced by the model.
// Immutable once generated; persisted with upsert semantics on
// (fixture, market, threshold, selection).
type Recommendation struct {
	FixtureExternalID int64     `json:"fixture_external_id"`
	HomeTeam          string    `json:"home_team"`
	AwayTeam          string    `json:"away_team"`
	LeagueName        string    `json:"league_name"`
	Country           string    `json:"country"`
	Kickoff           time.Time `json:"kickoff"`

	MarketType string  `json:"market_type"`
	Threshold  float64 `json:"threshold"`
	Selection  string  `json:"selection"`
	Bookmaker  string  `json:"bookmaker"`

	Probability     float64 `json:"probability"`
	FairOdd         float64 `json:"fair_odd"`
	MarketOdd       float64 `json:"market_odd"`
	EdgePercent     float64 `json:"edge_percent"`
	Tier            string  `json:"tier"`
	ConfidenceScore float64 `json:"confidence_score"`
	ModelVersion    string  `json:"model_version"`
	Explanation     string  `json:"explanation"`

	GeneratedAt time.Time `json:"generated_at"`
}
