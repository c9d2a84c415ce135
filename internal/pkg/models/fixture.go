package models

import (
	"time"
)

// Fixture statuses as normalized at the provider boundary.
const (
	FixtureScheduled = "scheduled"
	FixtureStarted   = "started"
	FixtureFinished  = "finished"
)

// Fixture represents a scheduled match as delivered by the data provider.
// Read-only for the model layer.
type Fixture struct {
	ExternalID int64     `json:"external_id"`
	Kickoff    time.Time `json:"kickoff"`
	Status     string    `json:"status"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomeTeamID int64     `json:"home_team_id"`
	AwayTeamID int64     `json:"away_team_id"`
	LeagueName string    `json:"league_name"`
	LeagueID   int64     `json:"league_id"`
	Country    string    `json:"country"`
	Season     int       `json:"season"`
}

// ExpectedGoals is the estimated Poisson rate pair for one fixture.
type ExpectedGoals struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Total returns the combined expected goals for the match.
func (eg ExpectedGoals) Total() float64 {
	return eg.Home + eg.Away
}
