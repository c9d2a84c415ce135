package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/agsports/valuepicks/internal/pkg/config"
	"github.com/agsports/valuepicks/internal/pkg/models"
	_ "github.com/lib/pq"
)

// Ensure PostgresStore implements Store
var _ Store = (*PostgresStore)(nil)

// PostgresStore persists fixtures, odds snapshots, recommendations,
// daily publications and pipeline runs.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection, verifies it and initializes the
// schema.
func NewPostgresStore(cfg *config.PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL store initialized")
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS fixtures (
		external_id BIGINT PRIMARY KEY,
		kickoff TIMESTAMPTZ NOT NULL,
		status VARCHAR(50) NOT NULL,
		home_team VARCHAR(200) NOT NULL,
		away_team VARCHAR(200) NOT NULL,
		home_team_id BIGINT NOT NULL,
		away_team_id BIGINT NOT NULL,
		league_name VARCHAR(200) NOT NULL,
		league_id BIGINT NOT NULL,
		country VARCHAR(100) NOT NULL,
		season INT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS odds_snapshots (
		id SERIAL PRIMARY KEY,
		fixture_external_id BIGINT NOT NULL,
		bookmaker VARCHAR(100) NOT NULL,
		market_type VARCHAR(100) NOT NULL,
		threshold DECIMAL(4, 2) NOT NULL,
		selection VARCHAR(20) NOT NULL,
		decimal_odd DECIMAL(10, 4) NOT NULL,
		captured_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_odds_snapshots_fixture ON odds_snapshots(fixture_external_id, captured_at);

	CREATE TABLE IF NOT EXISTS recommendations (
		id SERIAL PRIMARY KEY,
		fixture_external_id BIGINT NOT NULL,
		home_team VARCHAR(200) NOT NULL,
		away_team VARCHAR(200) NOT NULL,
		league_name VARCHAR(200) NOT NULL,
		country VARCHAR(100) NOT NULL,
		kickoff TIMESTAMPTZ NOT NULL,
		market_type VARCHAR(100) NOT NULL,
		threshold DECIMAL(4, 2) NOT NULL,
		selection VARCHAR(20) NOT NULL,
		bookmaker VARCHAR(100) NOT NULL,
		probability DECIMAL(6, 4) NOT NULL,
		fair_odd DECIMAL(10, 2) NOT NULL,
		market_odd DECIMAL(10, 2) NOT NULL,
		edge_percent DECIMAL(8, 2) NOT NULL,
		tier VARCHAR(20) NOT NULL,
		confidence_score DECIMAL(4, 2) NOT NULL,
		model_version VARCHAR(50) NOT NULL,
		explanation TEXT NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL,
		UNIQUE(fixture_external_id, market_type, threshold, selection)
	);

	CREATE INDEX IF NOT EXISTS idx_recommendations_edge ON recommendations(edge_percent DESC);
	CREATE INDEX IF NOT EXISTS idx_recommendations_kickoff ON recommendations(kickoff);

	CREATE TABLE IF NOT EXISTS daily_publications (
		id SERIAL PRIMARY KEY,
		publication_date DATE NOT NULL,
		publication_type VARCHAR(50) NOT NULL,
		content JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(publication_date, publication_type)
	);

	CREATE TABLE IF NOT EXISTS pipeline_runs (
		id SERIAL PRIMARY KEY,
		run_date DATE NOT NULL,
		model_version VARCHAR(50) NOT NULL,
		status VARCHAR(20) NOT NULL,
		fixtures_processed INT NOT NULL DEFAULT 0,
		recommendations_generated INT NOT NULL DEFAULT 0,
		execution_time_seconds INT NOT NULL DEFAULT 0,
		error_message TEXT,
		started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		finished_at TIMESTAMPTZ
	);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// UpsertFixtures stores fixtures keyed by external id, one row per
// fixture regardless of how many runs see it.
func (s *PostgresStore) UpsertFixtures(ctx context.Context, fixtures []models.Fixture) error {
	query := `
	INSERT INTO fixtures (
		external_id, kickoff, status, home_team, away_team,
		home_team_id, away_team_id, league_name, league_id, country, season, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	ON CONFLICT (external_id) DO UPDATE SET
		kickoff = EXCLUDED.kickoff,
		status = EXCLUDED.status,
		home_team = EXCLUDED.home_team,
		away_team = EXCLUDED.away_team,
		home_team_id = EXCLUDED.home_team_id,
		away_team_id = EXCLUDED.away_team_id,
		league_name = EXCLUDED.league_name,
		league_id = EXCLUDED.league_id,
		country = EXCLUDED.country,
		season = EXCLUDED.season,
		updated_at = NOW()
	`
	for _, f := range fixtures {
		_, err := s.db.ExecContext(ctx, query,
			f.ExternalID, f.Kickoff, f.Status, f.HomeTeam, f.AwayTeam,
			f.HomeTeamID, f.AwayTeamID, f.LeagueName, f.LeagueID, f.Country, f.Season,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert fixture %d: %w", f.ExternalID, err)
		}
	}
	return nil
}

// InsertOddsSnapshots appends captured quotes. Snapshots are a history,
// not a current-state table, so plain inserts.
func (s *PostgresStore) InsertOddsSnapshots(ctx context.Context, quotes []models.MarketQuote) error {
	query := `
	INSERT INTO odds_snapshots (
		fixture_external_id, bookmaker, market_type, threshold, selection, decimal_odd, captured_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, q := range quotes {
		capturedAt := q.CapturedAt
		if capturedAt.IsZero() {
			capturedAt = time.Now()
		}
		_, err := s.db.ExecContext(ctx, query,
			q.FixtureExternalID, q.Bookmaker, q.MarketType, q.Threshold, q.Selection, q.DecimalOdd, capturedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert odds snapshot for fixture %d: %w", q.FixtureExternalID, err)
		}
	}
	return nil
}

// UpsertRecommendations stores recommendations keyed by
// (fixture, market, threshold, selection); reruns overwrite.
func (s *PostgresStore) UpsertRecommendations(ctx context.Context, recs []models.Recommendation) error {
	query := `
	INSERT INTO recommendations (
		fixture_external_id, home_team, away_team, league_name, country, kickoff,
		market_type, threshold, selection, bookmaker,
		probability, fair_odd, market_odd, edge_percent, tier,
		confidence_score, model_version, explanation, generated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	ON CONFLICT (fixture_external_id, market_type, threshold, selection) DO UPDATE SET
		home_team = EXCLUDED.home_team,
		away_team = EXCLUDED.away_team,
		league_name = EXCLUDED.league_name,
		country = EXCLUDED.country,
		kickoff = EXCLUDED.kickoff,
		bookmaker = EXCLUDED.bookmaker,
		probability = EXCLUDED.probability,
		fair_odd = EXCLUDED.fair_odd,
		market_odd = EXCLUDED.market_odd,
		edge_percent = EXCLUDED.edge_percent,
		tier = EXCLUDED.tier,
		confidence_score = EXCLUDED.confidence_score,
		model_version = EXCLUDED.model_version,
		explanation = EXCLUDED.explanation,
		generated_at = EXCLUDED.generated_at
	`
	for _, r := range recs {
		_, err := s.db.ExecContext(ctx, query,
			r.FixtureExternalID, r.HomeTeam, r.AwayTeam, r.LeagueName, r.Country, r.Kickoff,
			r.MarketType, r.Threshold, r.Selection, r.Bookmaker,
			r.Probability, r.FairOdd, r.MarketOdd, r.EdgePercent, r.Tier,
			r.ConfidenceScore, r.ModelVersion, r.Explanation, r.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert recommendation for fixture %d: %w", r.FixtureExternalID, err)
		}
	}
	return nil
}

// TopRecommendations returns the highest-edge recommendations at or
// above minEdge.
func (s *PostgresStore) TopRecommendations(ctx context.Context, limit int, minEdge float64) ([]models.Recommendation, error) {
	query := `
	SELECT fixture_external_id, home_team, away_team, league_name, country, kickoff,
		market_type, threshold, selection, bookmaker,
		probability, fair_odd, market_odd, edge_percent, tier,
		confidence_score, model_version, explanation, generated_at
	FROM recommendations
	WHERE edge_percent >= $1
	ORDER BY edge_percent DESC, fixture_external_id, threshold, selection
	LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, minEdge, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top recommendations: %w", err)
	}
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var r models.Recommendation
		if err := rows.Scan(
			&r.FixtureExternalID, &r.HomeTeam, &r.AwayTeam, &r.LeagueName, &r.Country, &r.Kickoff,
			&r.MarketType, &r.Threshold, &r.Selection, &r.Bookmaker,
			&r.Probability, &r.FairOdd, &r.MarketOdd, &r.EdgePercent, &r.Tier,
			&r.ConfidenceScore, &r.ModelVersion, &r.Explanation, &r.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// SaveDailyPublication upserts the dated snapshot keyed by (date, type).
func (s *PostgresStore) SaveDailyPublication(ctx context.Context, pub models.DailyPublication) error {
	content, err := json.Marshal(pub.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal publication content: %w", err)
	}

	query := `
	INSERT INTO daily_publications (publication_date, publication_type, content, created_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (publication_date, publication_type) DO UPDATE SET
		content = EXCLUDED.content,
		created_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, pub.Date, pub.Type, content); err != nil {
		return fmt.Errorf("failed to save daily publication: %w", err)
	}
	return nil
}

// GetDailyPublication returns the publication for a date, nil when the
// date has none.
func (s *PostgresStore) GetDailyPublication(ctx context.Context, date, pubType string) (*models.DailyPublication, error) {
	query := `
	SELECT publication_date, publication_type, content, created_at
	FROM daily_publications
	WHERE publication_date = $1 AND publication_type = $2
	`
	return s.scanPublication(s.db.QueryRowContext(ctx, query, date, pubType))
}

// GetLatestPublication returns the most recent publication of a type.
func (s *PostgresStore) GetLatestPublication(ctx context.Context, pubType string) (*models.DailyPublication, error) {
	query := `
	SELECT publication_date, publication_type, content, created_at
	FROM daily_publications
	WHERE publication_type = $1
	ORDER BY publication_date DESC
	LIMIT 1
	`
	return s.scanPublication(s.db.QueryRowContext(ctx, query, pubType))
}

func (s *PostgresStore) scanPublication(row *sql.Row) (*models.DailyPublication, error) {
	var pub models.DailyPublication
	var date time.Time
	var content []byte
	err := row.Scan(&date, &pub.Type, &content, &pub.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan publication: %w", err)
	}
	pub.Date = date.Format("2006-01-02")
	if err := json.Unmarshal(content, &pub.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal publication content: %w", err)
	}
	return &pub, nil
}

// StartRun inserts a running pipeline run record.
func (s *PostgresStore) StartRun(ctx context.Context, runDate, modelVersion string) (int64, error) {
	query := `
	INSERT INTO pipeline_runs (run_date, model_version, status, started_at)
	VALUES ($1, $2, $3, NOW())
	RETURNING id
	`
	var id int64
	if err := s.db.QueryRowContext(ctx, query, runDate, modelVersion, models.RunRunning).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to start pipeline run: %w", err)
	}
	return id, nil
}

// CompleteRun sets the terminal completed state with counts.
func (s *PostgresStore) CompleteRun(ctx context.Context, runID int64, fixturesProcessed, recommendationsGenerated, executionTimeSeconds int) error {
	query := `
	UPDATE pipeline_runs
	SET status = $2, fixtures_processed = $3, recommendations_generated = $4,
		execution_time_seconds = $5, finished_at = NOW()
	WHERE id = $1 AND status = $6
	`
	if _, err := s.db.ExecContext(ctx, query, runID, models.RunCompleted,
		fixturesProcessed, recommendationsGenerated, executionTimeSeconds, models.RunRunning); err != nil {
		return fmt.Errorf("failed to complete pipeline run %d: %w", runID, err)
	}
	return nil
}

// FailRun sets the terminal failed state with the triggering message.
func (s *PostgresStore) FailRun(ctx context.Context, runID int64, errorMessage string) error {
	query := `
	UPDATE pipeline_runs
	SET status = $2, error_message = $3, finished_at = NOW()
	WHERE id = $1 AND status = $4
	`
	if _, err := s.db.ExecContext(ctx, query, runID, models.RunFailed, errorMessage, models.RunRunning); err != nil {
		return fmt.Errorf("failed to mark pipeline run %d failed: %w", runID, err)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
