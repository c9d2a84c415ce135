package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agsports/valuepicks/internal/pipeline"
	"github.com/agsports/valuepicks/internal/pkg/models"
)

// stubStore serves canned publications; everything else is unused by
// the handlers under test.
type stubStore struct {
	today  *models.DailyPublication
	latest *models.DailyPublication
	err    error
}

func (s *stubStore) UpsertFixtures(context.Context, []models.Fixture) error { return nil }
func (s *stubStore) InsertOddsSnapshots(context.Context, []models.MarketQuote) error {
	return nil
}
func (s *stubStore) UpsertRecommendations(context.Context, []models.Recommendation) error {
	return nil
}
func (s *stubStore) TopRecommendations(context.Context, int, float64) ([]models.Recommendation, error) {
	return nil, nil
}
func (s *stubStore) SaveDailyPublication(context.Context, models.DailyPublication) error { return nil }
func (s *stubStore) GetDailyPublication(_ context.Context, _, _ string) (*models.DailyPublication, error) {
	return s.today, s.err
}
func (s *stubStore) GetLatestPublication(_ context.Context, _ string) (*models.DailyPublication, error) {
	return s.latest, s.err
}
func (s *stubStore) StartRun(context.Context, string, string) (int64, error) { return 1, nil }
func (s *stubStore) CompleteRun(context.Context, int64, int, int, int) error { return nil }
func (s *stubStore) FailRun(context.Context, int64, string) error            { return nil }
func (s *stubStore) Close() error                                            { return nil }

type stubRunner struct {
	result pipeline.RunResult
	err    error
}

func (r *stubRunner) Run(context.Context) (pipeline.RunResult, error) { return r.result, r.err }

func samplePublication(date string) *models.DailyPublication {
	return &models.DailyPublication{
		Date: date,
		Type: models.PublicationTopPicks,
		Content: []models.TopPick{{
			FixtureExternalID: 1035045,
			HomeTeam:          "Manchester United",
			AwayTeam:          "Liverpool",
			LeagueName:        "Premier League",
			MarketDisplay:     "Over 2.5 goals",
			EdgePercent:       4.21,
			Level:             "Moderate",
		}},
	}
}

func TestGetPicks_TodayPublication(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	h := NewHandler(&stubStore{today: samplePublication(today)}, nil, nil)

	rec := httptest.NewRecorder()
	h.GetPicks(rec, httptest.NewRequest(http.MethodGet, "/api/picks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp picksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !resp.Success || resp.Date != today || len(resp.Data) != 1 {
		t.Errorf("response = %+v", resp)
	}
	if resp.Data[0].HomeTeam != "Manchester United" {
		t.Errorf("pick = %+v", resp.Data[0])
	}
}

func TestGetPicks_FallsBackToLatest(t *testing.T) {
	h := NewHandler(&stubStore{latest: samplePublication("2026-08-30")}, nil, nil)

	rec := httptest.NewRecorder()
	h.GetPicks(rec, httptest.NewRequest(http.MethodGet, "/api/picks", nil))

	var resp picksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Date != "2026-08-30" || len(resp.Data) != 1 {
		t.Errorf("fallback response = %+v", resp)
	}
}

func TestGetPicks_EmptyWhenNothingPublished(t *testing.T) {
	h := NewHandler(&stubStore{}, nil, nil)

	rec := httptest.NewRecorder()
	h.GetPicks(rec, httptest.NewRequest(http.MethodGet, "/api/picks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp picksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.Data) != 0 {
		t.Errorf("response = %+v, want empty data", resp)
	}
}

func TestGetPicks_StoreError(t *testing.T) {
	h := NewHandler(&stubStore{err: errors.New("connection refused")}, nil, nil)

	rec := httptest.NewRecorder()
	h.GetPicks(rec, httptest.NewRequest(http.MethodGet, "/api/picks", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestDailyProcess(t *testing.T) {
	runner := &stubRunner{result: pipeline.RunResult{
		Status:                   models.RunCompleted,
		FixturesProcessed:        15,
		RecommendationsGenerated: 8,
		TopPicks:                 5,
	}}
	h := NewHandler(&stubStore{}, runner, nil)

	rec := httptest.NewRecorder()
	h.DailyProcess(rec, httptest.NewRequest(http.MethodPost, "/api/daily-process", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Success bool `json:"success"`
		Stats   struct {
			FixturesProcessed int `json:"fixtures_processed"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Stats.FixturesProcessed != 15 {
		t.Errorf("response = %+v", resp)
	}
}

func TestDailyProcess_RunFailure(t *testing.T) {
	h := NewHandler(&stubStore{}, &stubRunner{err: errors.New("provider down")}, nil)

	rec := httptest.NewRecorder()
	h.DailyProcess(rec, httptest.NewRequest(http.MethodPost, "/api/daily-process", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRouter_MethodGuard(t *testing.T) {
	h := NewHandler(&stubStore{}, nil, nil)
	router := NewRouter(h)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/daily-process", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on daily-process: status = %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health: status = %d, want 200", rec.Code)
	}
}
