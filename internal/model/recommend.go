package model

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/agsports/valuepicks/internal/pkg/models"
)

// ModelVersion tags every recommendation and run record.
const ModelVersion = "poisson_v1"

// ConfidenceScore is a flat placeholder until the model calibrates a
// real confidence from data volume.
const ConfidenceScore = 0.7

// GeneratorConfig tunes recommendation generation.
type GeneratorConfig struct {
	// SupportedThresholds are the half-integer goal lines the model can
	// price. Quotes on other lines are filtered out, not errors.
	SupportedThresholds []float64
	// MinEdgePercent is the exclusive inclusion cutoff.
	MinEdgePercent float64
	Tiers          TierThresholds
}

// DefaultGeneratorConfig prices the 1.5/2.5/3.5 lines and keeps any
// positive edge.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		SupportedThresholds: []float64{1.5, 2.5, 3.5},
		MinEdgePercent:      0,
		Tiers:               DefaultTierThresholds(),
	}
}

// Generator joins estimated probabilities with market quotes and keeps
// the positive-edge ones, ranked by edge.
type Generator struct {
	cfg GeneratorConfig
	now func() time.Time
}

// NewGenerator creates a generator with the given config.
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{cfg: cfg, now: time.Now}
}

// Generate produces ranked recommendations for one fixture. Pure apart
// from timestamps: no I/O, persistence is the caller's job.
func (g *Generator) Generate(fixture models.Fixture, eg models.ExpectedGoals, quotes []models.MarketQuote) []models.Recommendation {
	total := eg.Total()
	var recs []models.Recommendation

	for _, quote := range quotes {
		prob, ok := g.probabilityFor(total, quote)
		if !ok {
			continue
		}

		assessment, err := ComputeEdge(prob, quote.DecimalOdd, g.cfg.Tiers)
		if err != nil {
			// Invalid quote, skip it; never fails the fixture.
			continue
		}
		if assessment.EdgePercent <= g.cfg.MinEdgePercent {
			continue
		}

		recs = append(recs, models.Recommendation{
			FixtureExternalID: fixture.ExternalID,
			HomeTeam:          fixture.HomeTeam,
			AwayTeam:          fixture.AwayTeam,
			LeagueName:        fixture.LeagueName,
			Country:           fixture.Country,
			Kickoff:           fixture.Kickoff,
			MarketType:        quote.MarketType,
			Threshold:         quote.Threshold,
			Selection:         quote.Selection,
			Bookmaker:         quote.Bookmaker,
			Probability:       RoundProbability(assessment.Probability),
			FairOdd:           RoundOdd(assessment.FairOdd),
			MarketOdd:         quote.DecimalOdd,
			EdgePercent:       RoundEdge(assessment.EdgePercent),
			Tier:              assessment.Tier,
			ConfidenceScore:   ConfidenceScore,
			ModelVersion:      ModelVersion,
			Explanation:       explain(eg, quote, assessment),
			GeneratedAt:       g.now(),
		})
	}

	sortRecommendations(recs)
	return recs
}

// probabilityFor prices one quote against the combined total-goals rate.
// Returns false for markets or thresholds the model does not cover.
func (g *Generator) probabilityFor(totalRate float64, quote models.MarketQuote) (float64, bool) {
	if quote.MarketType != models.MarketTotalGoals {
		return 0, false
	}
	if !g.supported(quote.Threshold) {
		return 0, false
	}
	if totalRate <= 0 {
		return 0, false
	}

	// 2.5 goals line: over means strictly more than 2 goals.
	k := int(math.Floor(quote.Threshold))

	switch quote.Selection {
	case models.SelectionOver:
		p, err := ProbabilityOver(totalRate, k)
		if err != nil {
			return 0, false
		}
		return p, true
	case models.SelectionUnder:
		p, err := ProbabilityUnder(totalRate, k)
		if err != nil {
			return 0, false
		}
		return p, true
	default:
		return 0, false
	}
}

func (g *Generator) supported(threshold float64) bool {
	for _, t := range g.cfg.SupportedThresholds {
		if t == threshold {
			return true
		}
	}
	return false
}

// sortRecommendations orders by edge descending with a deterministic
// tie-break so reruns rank identically regardless of quote order:
// fixture id, threshold, selection, bookmaker.
func sortRecommendations(recs []models.Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.EdgePercent != b.EdgePercent {
			return a.EdgePercent > b.EdgePercent
		}
		if a.FixtureExternalID != b.FixtureExternalID {
			return a.FixtureExternalID < b.FixtureExternalID
		}
		if a.Threshold != b.Threshold {
			return a.Threshold < b.Threshold
		}
		if a.Selection != b.Selection {
			return a.Selection < b.Selection
		}
		return a.Bookmaker < b.Bookmaker
	})
}

// explain renders the user-facing rationale. The field order is fixed
// and the output deterministic so it can be golden-tested.
func explain(eg models.ExpectedGoals, quote models.MarketQuote, a models.EdgeAssessment) string {
	return fmt.Sprintf(
		"Model expects %.1f total goals (%.1f home, %.1f away). Probability of %s %s: %d%%. Fair odd: %s, market offers: %s. Edge of %s%%.",
		eg.Total(), eg.Home, eg.Away,
		quote.Selection, formatFloat(quote.Threshold),
		int(math.Round(RoundProbability(a.Probability)*100)),
		formatFloat(RoundOdd(a.FairOdd)),
		formatFloat(quote.DecimalOdd),
		formatFloat(RoundEdge(a.EdgePercent)),
	)
}

// formatFloat prints without trailing zeros (1.68, 2.5, 3).
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatMarketDisplay renders a market for end users, e.g. "Over 2.5 goals".
func FormatMarketDisplay(marketType string, threshold float64, selection string) string {
	if marketType == models.MarketTotalGoals {
		label := "Over"
		if selection == models.SelectionUnder {
			label = "Under"
		}
		return fmt.Sprintf("%s %s goals", label, formatFloat(threshold))
	}
	return fmt.Sprintf("%s %s", selection, formatFloat(threshold))
}

// RecommendationLevel maps an edge percentage to the publication label.
func RecommendationLevel(edgePercent float64) string {
	switch {
	case edgePercent >= 5:
		return "Strong"
	case edgePercent >= 3:
		return "Moderate"
	case edgePercent >= 1:
		return "Weak"
	default:
		return "Avoid"
	}
}
