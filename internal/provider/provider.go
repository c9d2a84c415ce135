package provider

import (
	"context"
	"time"

	"github.com/agsports/valuepicks/internal/pkg/models"
)

// FixtureProvider delivers upcoming fixtures inside a time window.
type FixtureProvider interface {
	// UpcomingFixtures returns scheduled fixtures with kickoff in
	// [from, to], normalized to the canonical Fixture shape.
	UpcomingFixtures(ctx context.Context, from, to time.Time) ([]models.Fixture, error)
}

// OddsProvider delivers market quotes for one fixture.
type OddsProvider interface {
	// FixtureOdds returns the total-goals quotes currently offered for
	// the fixture. An empty slice is a valid answer.
	FixtureOdds(ctx context.Context, fixtureExternalID int64) ([]models.MarketQuote, error)
}
