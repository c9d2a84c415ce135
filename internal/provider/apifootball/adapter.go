package apifootball

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agsports/valuepicks/internal/pkg/models"
)

// The adapter is the single place where provider field shapes become the
// canonical Fixture/MarketQuote types. Nothing past this file branches
// on provider naming.

// parseFixtures converts one /fixtures response.
func parseFixtures(data []byte) ([]models.Fixture, error) {
	var resp fixturesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures response: %w", err)
	}

	fixtures := make([]models.Fixture, 0, len(resp.Response))
	for _, entry := range resp.Response {
		kickoff, err := time.Parse(time.RFC3339, entry.Fixture.Date)
		if err != nil {
			// Entry with an unreadable kickoff is dropped, not fatal.
			continue
		}
		fixtures = append(fixtures, models.Fixture{
			ExternalID: entry.Fixture.ID,
			Kickoff:    kickoff,
			Status:     normalizeStatus(entry.Fixture.Status.Short),
			HomeTeam:   entry.Teams.Home.Name,
			AwayTeam:   entry.Teams.Away.Name,
			HomeTeamID: entry.Teams.Home.ID,
			AwayTeamID: entry.Teams.Away.ID,
			LeagueName: entry.League.Name,
			LeagueID:   entry.League.ID,
			Country:    entry.League.Country,
			Season:     entry.League.Season,
		})
	}
	return fixtures, nil
}

// normalizeStatus maps API-Football short statuses to the canonical set.
func normalizeStatus(short string) string {
	switch strings.ToUpper(short) {
	case "NS", "TBD", "PST":
		return models.FixtureScheduled
	case "1H", "HT", "2H", "ET", "BT", "P", "LIVE", "INT", "SUSP":
		return models.FixtureStarted
	case "FT", "AET", "PEN", "AWD", "WO":
		return models.FixtureFinished
	default:
		return models.FixtureScheduled
	}
}

// parseOdds converts one /odds response into canonical quotes for the
// fixture. Unreadable values are skipped.
func parseOdds(data []byte, fixtureID int64, capturedAt time.Time) ([]models.MarketQuote, error) {
	var resp oddsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse odds response: %w", err)
	}

	var quotes []models.MarketQuote
	for _, entry := range resp.Response {
		for _, bookmaker := range entry.Bookmakers {
			for _, bet := range bookmaker.Bets {
				if !isGoalsOverUnder(bet.Name) {
					continue
				}
				for _, value := range bet.Values {
					selection, threshold, ok := parseSelectionLabel(value.Value)
					if !ok {
						continue
					}
					odd, err := strconv.ParseFloat(value.Odd, 64)
					if err != nil || odd <= 1 {
						continue
					}
					quotes = append(quotes, models.MarketQuote{
						FixtureExternalID: fixtureID,
						Bookmaker:         bookmaker.Name,
						MarketType:        models.MarketTotalGoals,
						Threshold:         threshold,
						Selection:         selection,
						DecimalOdd:        odd,
						CapturedAt:        capturedAt,
					})
				}
			}
		}
	}
	return quotes, nil
}

func isGoalsOverUnder(betName string) bool {
	name := strings.ToLower(betName)
	return strings.Contains(name, "goals over/under") || name == "over/under"
}

// parseSelectionLabel accepts the label variants seen in the wild
// ("Over 2.5", "Over2.5", "2.5 Over") and returns the canonical
// selection and threshold.
func parseSelectionLabel(label string) (string, float64, bool) {
	normalized := strings.ToLower(strings.TrimSpace(label))

	var selection string
	switch {
	case strings.Contains(normalized, models.SelectionOver):
		selection = models.SelectionOver
	case strings.Contains(normalized, models.SelectionUnder):
		selection = models.SelectionUnder
	default:
		return "", 0, false
	}

	numeric := strings.ReplaceAll(normalized, selection, "")
	numeric = strings.TrimSpace(numeric)
	threshold, err := strconv.ParseFloat(numeric, 64)
	if err != nil || threshold <= 0 {
		return "", 0, false
	}
	return selection, threshold, true
}
