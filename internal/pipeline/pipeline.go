// Package pipeline sequences the daily run: fetch fixtures, price the
// markets, persist recommendations, publish top picks.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/agsports/valuepicks/internal/model"
	"github.com/agsports/valuepicks/internal/pkg/config"
	"github.com/agsports/valuepicks/internal/pkg/models"
	"github.com/agsports/valuepicks/internal/pkg/storage"
	"github.com/agsports/valuepicks/internal/provider"
)

// Notifier receives the daily publication after it is persisted.
// Notification failures never fail the run.
type Notifier interface {
	NotifyTopPicks(pub models.DailyPublication) error
}

// RunResult summarizes one pipeline execution.
type RunResult struct {
	RunID                    int64
	Status                   string
	FixturesProcessed        int
	RecommendationsGenerated int
	QuoteFetchFailures       int
	TopPicks                 int
	ExecutionTime            time.Duration
}

// Pipeline owns the run lifecycle. One invocation produces exactly one
// pipeline run record with exactly one terminal transition.
type Pipeline struct {
	fixtures  provider.FixtureProvider
	odds      provider.OddsProvider
	store     storage.Store
	estimator *model.Estimator
	generator *model.Generator
	notifier  Notifier
	cfg       config.PipelineConfig
	now       func() time.Time
}

// New wires a pipeline. notifier may be nil.
func New(fixtures provider.FixtureProvider, odds provider.OddsProvider, store storage.Store,
	estimator *model.Estimator, generator *model.Generator, notifier Notifier, cfg config.PipelineConfig) *Pipeline {
	return &Pipeline{
		fixtures:  fixtures,
		odds:      odds,
		store:     store,
		estimator: estimator,
		generator: generator,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run executes one full pipeline pass. Per-fixture quote failures are
// logged and skipped; provider total unavailability and persistence
// errors fail the run.
func (p *Pipeline) Run(ctx context.Context) (RunResult, error) {
	start := p.now()
	runDate := start.UTC().Format("2006-01-02")

	runID, err := p.store.StartRun(ctx, runDate, model.ModelVersion)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to record pipeline run: %w", err)
	}
	slog.Info("Pipeline run started", "run_id", runID, "run_date", runDate)

	result, err := p.execute(ctx, runID, start, runDate)
	if err != nil {
		p.failRun(ctx, runID, err)
		result.RunID = runID
		result.Status = models.RunFailed
		result.ExecutionTime = p.now().Sub(start)
		return result, err
	}
	return result, nil
}

func (p *Pipeline) execute(ctx context.Context, runID int64, start time.Time, runDate string) (RunResult, error) {
	result := RunResult{RunID: runID}

	// 1. Fixture window.
	from := start
	to := start.Add(time.Duration(p.cfg.HorizonHours) * time.Hour)
	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.ProviderTimeout)
	fixtures, err := p.fixtures.UpcomingFixtures(fetchCtx, from, to)
	cancel()
	if err != nil {
		return result, fmt.Errorf("fixture source unavailable: %w", err)
	}
	slog.Info("Fetched fixtures", "count", len(fixtures), "horizon_hours", p.cfg.HorizonHours)

	if len(fixtures) == 0 {
		if err := p.completeRun(ctx, runID, start, 0, 0); err != nil {
			return result, err
		}
		result.Status = models.RunCompleted
		result.ExecutionTime = p.now().Sub(start)
		slog.Info("Pipeline run completed with no fixtures", "run_id", runID)
		return result, nil
	}

	// 2. Persist fixtures.
	if err := p.store.UpsertFixtures(ctx, fixtures); err != nil {
		return result, fmt.Errorf("failed to persist fixtures: %w", err)
	}

	// 3. Quotes, batched with a pause to respect provider rate limits.
	quotesByFixture, failures := p.fetchQuotes(ctx, fixtures)
	result.QuoteFetchFailures = failures
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run aborted: %w", err)
	}

	// 4. Persist the captured snapshots.
	var allQuotes []models.MarketQuote
	for _, fixture := range fixtures {
		allQuotes = append(allQuotes, quotesByFixture[fixture.ExternalID]...)
	}
	if len(allQuotes) > 0 {
		if err := p.store.InsertOddsSnapshots(ctx, allQuotes); err != nil {
			return result, fmt.Errorf("failed to persist odds snapshots: %w", err)
		}
	}
	slog.Info("Collected quotes", "quotes", len(allQuotes), "fixtures_without_quotes", len(fixtures)-len(quotesByFixture), "fetch_failures", failures)

	// 5. Model pass.
	var recommendations []models.Recommendation
	for _, fixture := range fixtures {
		quotes := quotesByFixture[fixture.ExternalID]
		if len(quotes) == 0 {
			continue
		}
		eg := p.estimator.Estimate(fixture)
		recs := p.generator.Generate(fixture, eg, quotes)
		if len(recs) > 0 {
			recommendations = append(recommendations, recs...)
			slog.Debug("Generated recommendations", "fixture", fixture.ExternalID, "home", fixture.HomeTeam, "away", fixture.AwayTeam, "count", len(recs))
		}
	}
	result.FixturesProcessed = len(fixtures)
	result.RecommendationsGenerated = len(recommendations)

	// 6. Persist recommendations; rerun overwrites via upsert keys.
	if len(recommendations) > 0 {
		if err := p.store.UpsertRecommendations(ctx, recommendations); err != nil {
			return result, fmt.Errorf("failed to persist recommendations: %w", err)
		}
	}

	// 7. Daily publication snapshot.
	topPicks, err := p.publishTopPicks(ctx, runDate)
	if err != nil {
		return result, err
	}
	result.TopPicks = topPicks

	// 8. Terminal state.
	if err := p.completeRun(ctx, runID, start, len(fixtures), len(recommendations)); err != nil {
		return result, err
	}
	result.Status = models.RunCompleted
	result.ExecutionTime = p.now().Sub(start)
	slog.Info("Pipeline run completed", "run_id", runID,
		"fixtures", result.FixturesProcessed, "recommendations", result.RecommendationsGenerated,
		"top_picks", result.TopPicks, "duration", result.ExecutionTime)
	return result, nil
}

// fetchQuotes pulls quotes per fixture in bounded batches. A failed
// fixture is counted and skipped, never fatal.
func (p *Pipeline) fetchQuotes(ctx context.Context, fixtures []models.Fixture) (map[int64][]models.MarketQuote, int) {
	quotes := make(map[int64][]models.MarketQuote)
	failures := 0
	var mu sync.Mutex

	batchSize := p.cfg.QuoteBatchSize
	for batchStart := 0; batchStart < len(fixtures); batchStart += batchSize {
		if ctx.Err() != nil {
			break
		}
		batchEnd := batchStart + batchSize
		if batchEnd > len(fixtures) {
			batchEnd = len(fixtures)
		}

		var wg sync.WaitGroup
		for _, fixture := range fixtures[batchStart:batchEnd] {
			wg.Add(1)
			go func(fixture models.Fixture) {
				defer wg.Done()
				callCtx, cancel := context.WithTimeout(ctx, p.cfg.ProviderTimeout)
				defer cancel()

				fixtureQuotes, err := p.odds.FixtureOdds(callCtx, fixture.ExternalID)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					slog.Warn("Failed to fetch quotes, skipping fixture", "fixture", fixture.ExternalID,
						"home", fixture.HomeTeam, "away", fixture.AwayTeam, "error", err)
					failures++
					return
				}
				if len(fixtureQuotes) > 0 {
					quotes[fixture.ExternalID] = fixtureQuotes
				}
			}(fixture)
		}
		wg.Wait()

		if batchEnd < len(fixtures) {
			select {
			case <-ctx.Done():
			case <-time.After(p.cfg.QuoteBatchPause):
			}
		}
	}
	return quotes, failures
}

// publishTopPicks selects the best stored recommendations and upserts
// the dated snapshot. Returns the number of picks published.
func (p *Pipeline) publishTopPicks(ctx context.Context, runDate string) (int, error) {
	top, err := p.store.TopRecommendations(ctx, p.cfg.TopPicksLimit, p.cfg.PublicationMinEdge)
	if err != nil {
		return 0, fmt.Errorf("failed to select top recommendations: %w", err)
	}

	pub := models.DailyPublication{
		Date:    runDate,
		Type:    models.PublicationTopPicks,
		Content: make([]models.TopPick, 0, len(top)),
	}
	for _, rec := range top {
		pub.Content = append(pub.Content, models.TopPick{
			FixtureExternalID: rec.FixtureExternalID,
			HomeTeam:          rec.HomeTeam,
			AwayTeam:          rec.AwayTeam,
			LeagueName:        rec.LeagueName,
			Country:           rec.Country,
			Kickoff:           rec.Kickoff,
			MarketType:        rec.MarketType,
			Threshold:         rec.Threshold,
			Selection:         rec.Selection,
			MarketDisplay:     model.FormatMarketDisplay(rec.MarketType, rec.Threshold, rec.Selection),
			Probability:       rec.Probability,
			FairOdd:           rec.FairOdd,
			MarketOdd:         rec.MarketOdd,
			EdgePercent:       rec.EdgePercent,
			ConfidenceScore:   rec.ConfidenceScore,
			Level:             model.RecommendationLevel(rec.EdgePercent),
			Explanation:       rec.Explanation,
		})
	}

	if err := p.store.SaveDailyPublication(ctx, pub); err != nil {
		return 0, fmt.Errorf("failed to save daily publication: %w", err)
	}

	if p.notifier != nil {
		if err := p.notifier.NotifyTopPicks(pub); err != nil {
			slog.Warn("Failed to notify top picks", "error", err)
		}
	}
	return len(pub.Content), nil
}

func (p *Pipeline) completeRun(ctx context.Context, runID int64, start time.Time, fixtures, recommendations int) error {
	seconds := int(p.now().Sub(start).Seconds())
	if err := p.store.CompleteRun(ctx, runID, fixtures, recommendations, seconds); err != nil {
		return fmt.Errorf("failed to complete pipeline run: %w", err)
	}
	return nil
}

// failRun records the terminal failed state. Uses a detached context so
// the write still happens when the run was cancelled.
func (p *Pipeline) failRun(ctx context.Context, runID int64, runErr error) {
	slog.Error("Pipeline run failed", "run_id", runID, "error", runErr)
	failCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := p.store.FailRun(failCtx, runID, runErr.Error()); err != nil {
		slog.Error("Failed to record run failure", "run_id", runID, "error", err)
	}
}
