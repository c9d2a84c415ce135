// Package apifootball implements the fixture and odds providers on top
// of the API-Football v3 HTTP API.
package apifootball

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agsports/valuepicks/internal/pkg/config"
	"github.com/agsports/valuepicks/internal/pkg/models"
	"github.com/agsports/valuepicks/internal/provider"
)

var (
	_ provider.FixtureProvider = (*Provider)(nil)
	_ provider.OddsProvider    = (*Provider)(nil)
)

// Provider pulls fixtures and total-goals odds from API-Football.
type Provider struct {
	client    *httpClient
	leagueIDs []int64
	now       func() time.Time
}

// New creates a provider for the configured leagues.
func New(cfg *config.APIFootballConfig) *Provider {
	return &Provider{
		client:    newHTTPClient(cfg),
		leagueIDs: cfg.LeagueIDs,
		now:       time.Now,
	}
}

// UpcomingFixtures fetches scheduled fixtures per league for each date
// the window touches, then filters to kickoff within [from, to].
// A league that fails is skipped; the method errors only when every
// league fails, which the pipeline treats as total unavailability.
func (p *Provider) UpcomingFixtures(ctx context.Context, from, to time.Time) ([]models.Fixture, error) {
	var fixtures []models.Fixture
	var lastErr error
	failures := 0

	for _, leagueID := range p.leagueIDs {
		for day := from.Truncate(24 * time.Hour); !day.After(to); day = day.Add(24 * time.Hour) {
			data, err := p.client.getFixtures(ctx, leagueID, day.UTC().Format("2006-01-02"))
			if err != nil {
				slog.Warn("Failed to fetch fixtures", "league_id", leagueID, "date", day.Format("2006-01-02"), "error", err)
				failures++
				lastErr = err
				continue
			}
			parsed, err := parseFixtures(data)
			if err != nil {
				slog.Warn("Failed to parse fixtures", "league_id", leagueID, "error", err)
				failures++
				lastErr = err
				continue
			}
			for _, f := range parsed {
				if f.Status != models.FixtureScheduled {
					continue
				}
				if f.Kickoff.Before(from) || f.Kickoff.After(to) {
					continue
				}
				fixtures = append(fixtures, f)
			}
		}
	}

	totalCalls := len(p.leagueIDs) * daysIn(from, to)
	if failures > 0 && failures == totalCalls {
		return nil, fmt.Errorf("all fixture requests failed: %w", lastErr)
	}
	return fixtures, nil
}

func daysIn(from, to time.Time) int {
	days := 0
	for day := from.Truncate(24 * time.Hour); !day.After(to); day = day.Add(24 * time.Hour) {
		days++
	}
	return days
}

// FixtureOdds fetches and normalizes the over/under goals quotes for one
// fixture.
func (p *Provider) FixtureOdds(ctx context.Context, fixtureExternalID int64) ([]models.MarketQuote, error) {
	data, err := p.client.getOdds(ctx, fixtureExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch odds for fixture %d: %w", fixtureExternalID, err)
	}
	quotes, err := parseOdds(data, fixtureExternalID, p.now())
	if err != nil {
		return nil, fmt.Errorf("failed to parse odds for fixture %d: %w", fixtureExternalID, err)
	}
	return quotes, nil
}
