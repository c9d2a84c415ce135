package models

import (
	"time"
)

// Pipeline run statuses. A run moves running -> completed or
// running -> failed, exactly once.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// PipelineRun records one orchestrator invocation.
type PipelineRun struct {
	ID                       int64     `json:"id"`
	RunDate                  string    `json:"run_date"` // YYYY-MM-DD
	ModelVersion             string    `json:"model_version"`
	Status                   string    `json:"status"`
	FixturesProcessed        int       `json:"fixtures_processed"`
	RecommendationsGenerated int       `json:"recommendations_generated"`
	ExecutionTimeSeconds     int       `json:"execution_time_seconds"`
	ErrorMessage             string    `json:"error_message,omitempty"`
	StartedAt                time.Time `json:"started_at"`
	FinishedAt               time.Time `json:"finished_at,omitzero"`
}

// Publication types for dated snapshots.
const (
	PublicationTopPicks = "top_picks"
)

// TopPick is one denormalized entry of a daily top_picks publication.
// This is the stable read surface for downstream consumers.
type TopPick struct {
	FixtureExternalID int64     `json:"fixture_external_id"`
	HomeTeam          string    `json:"home_team"`
	AwayTeam          string    `json:"away_team"`
	LeagueName        string    `json:"league_name"`
	Country           string    `json:"country"`
	Kickoff           time.Time `json:"kickoff"`

	MarketType    string  `json:"market_type"`
	Threshold     float64 `json:"threshold"`
	Selection     string  `json:"selection"`
	MarketDisplay string  `json:"market_display"`

	Probability     float64 `json:"probability"`
	FairOdd         float64 `json:"fair_odd"`
	MarketOdd       float64 `json:"market_odd"`
	EdgePercent     float64 `json:"edge_percent"`
	ConfidenceScore float64 `json:"confidence_score"`
	Level           string  `json:"level"`
	Explanation     string  `json:"explanation"`
}

// DailyPublication is a dated snapshot keyed by (date, type).
type DailyPublication struct {
	Date      string    `json:"date"` // YYYY-MM-DD
	Type      string    `json:"type"`
	Content   []TopPick `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
