package model

import (
	"github.com/agsports/valuepicks/internal/pkg/models"
)

// ModelParams holds the immutable tuning of the goals model. Passed in
// explicitly so tests and future seasons can swap tables without shared
// state.
type ModelParams struct {
	// LeagueGoalAverages maps league name to average total goals per match.
	LeagueGoalAverages map[string]float64
	// DefaultGoalAverage is used for leagues missing from the table.
	DefaultGoalAverage float64
	// HomeAdvantage scales the home share (> 1), AwayDisadvantage the
	// away share (< 1).
	HomeAdvantage    float64
	AwayDisadvantage float64
	// HomeShare + AwayShare split the league baseline between the sides.
	HomeShare float64
	AwayShare float64
}

// DefaultModelParams returns the baseline table and multipliers.
// Team form, head-to-head and xG are deliberately absent from this
// version; the league average is the whole signal.
func DefaultModelParams() ModelParams {
	return ModelParams{
		LeagueGoalAverages: map[string]float64{
			"Premier League": 2.7,
			"La Liga":        2.6,
			"Serie A":        2.5,
			"Bundesliga":     3.1,
			"Ligue 1":        2.8,
			"Brasileirão":    2.4,
			"Copa do Brasil": 2.3,
			"Libertadores":   2.2,
		},
		DefaultGoalAverage: 2.5,
		HomeAdvantage:      1.15,
		AwayDisadvantage:   0.85,
		HomeShare:          0.55,
		AwayShare:          0.45,
	}
}

// Estimator maps a fixture to its expected-goals pair.
type Estimator struct {
	params ModelParams
}

// NewEstimator creates an estimator with the given parameters.
func NewEstimator(params ModelParams) *Estimator {
	return &Estimator{params: params}
}

// Estimate returns the expected goals for both sides of a fixture.
// Deterministic: same fixture and params always give the same rates.
func (e *Estimator) Estimate(fixture models.Fixture) models.ExpectedGoals {
	avg, ok := e.params.LeagueGoalAverages[fixture.LeagueName]
	if !ok {
		avg = e.params.DefaultGoalAverage
	}

	return models.ExpectedGoals{
		Home: avg * e.params.HomeAdvantage * e.params.HomeShare,
		Away: avg * e.params.AwayDisadvantage * e.params.AwayShare,
	}
}
