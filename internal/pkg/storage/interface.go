package storage

import (
	"context"

	"github.com/agsports/valuepicks/internal/pkg/models"
)

// Store is the persistence collaborator for the pipeline. All writes are
// idempotent upserts so a rerun overwrites instead of duplicating.
type Store interface {
	// UpsertFixtures inserts or updates fixtures keyed by external id.
	UpsertFixtures(ctx context.Context, fixtures []models.Fixture) error

	// InsertOddsSnapshots records the quotes captured during a run.
	InsertOddsSnapshots(ctx context.Context, quotes []models.MarketQuote) error

	// UpsertRecommendations inserts or updates recommendations keyed by
	// (fixture, market, threshold, selection).
	UpsertRecommendations(ctx context.Context, recs []models.Recommendation) error

	// TopRecommendations returns up to limit recommendations with edge
	// >= minEdge, ordered by edge descending.
	TopRecommendations(ctx context.Context, limit int, minEdge float64) ([]models.Recommendation, error)

	// SaveDailyPublication upserts a dated snapshot keyed by (date, type).
	SaveDailyPublication(ctx context.Context, pub models.DailyPublication) error

	// GetDailyPublication returns the publication for a date, or nil if
	// none exists.
	GetDailyPublication(ctx context.Context, date, pubType string) (*models.DailyPublication, error)

	// GetLatestPublication returns the most recent publication of a type,
	// or nil if none exists.
	GetLatestPublication(ctx context.Context, pubType string) (*models.DailyPublication, error)

	// StartRun creates a running pipeline run record and returns its id.
	StartRun(ctx context.Context, runDate, modelVersion string) (int64, error)

	// CompleteRun marks a run completed with its aggregate counts.
	CompleteRun(ctx context.Context, runID int64, fixturesProcessed, recommendationsGenerated, executionTimeSeconds int) error

	// FailRun marks a run failed with the triggering error message.
	FailRun(ctx context.Context, runID int64, errorMessage string) error

	// Close releases the underlying connections.
	Close() error
}
