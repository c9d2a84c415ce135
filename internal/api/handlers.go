package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/agsports/valuepicks/internal/pipeline"
	"github.com/agsports/valuepicks/internal/pkg/models"
	"github.com/agsports/valuepicks/internal/pkg/storage"
)

// Runner triggers a pipeline execution on demand.
type Runner interface {
	Run(ctx context.Context) (pipeline.RunResult, error)
}

// Handler serves the picks read surface and the manual process trigger.
type Handler struct {
	store  storage.Store
	runner Runner
	cache  *PicksCache
	now    func() time.Time
}

// NewHandler creates a handler. runner may be nil (read-only API) and
// cache may be nil (no caching).
func NewHandler(store storage.Store, runner Runner, cache *PicksCache) *Handler {
	return &Handler{store: store, runner: runner, cache: cache, now: time.Now}
}

type picksResponse struct {
	Success bool             `json:"success"`
	Date    string           `json:"date"`
	Data    []models.TopPick `json:"data"`
}

// GetPicks returns today's top-picks publication, falling back to the
// latest one so the surface never goes blank between runs.
func (h *Handler) GetPicks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	today := h.now().UTC().Format("2006-01-02")
	cacheKey := "picks:" + today

	if cached := h.cache.Get(ctx, cacheKey); cached != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(cached)
		return
	}

	pub, err := h.store.GetDailyPublication(ctx, today, models.PublicationTopPicks)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load picks", err)
		return
	}
	if pub == nil {
		pub, err = h.store.GetLatestPublication(ctx, models.PublicationTopPicks)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load picks", err)
			return
		}
	}

	resp := picksResponse{Success: true, Data: []models.TopPick{}}
	if pub != nil {
		resp.Date = pub.Date
		resp.Data = pub.Content
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode picks", err)
		return
	}
	h.cache.Set(ctx, cacheKey, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// DailyProcess runs the pipeline synchronously and reports its stats.
func (h *Handler) DailyProcess(w http.ResponseWriter, r *http.Request) {
	if h.runner == nil {
		respondError(w, http.StatusServiceUnavailable, "pipeline not configured", nil)
		return
	}

	result, err := h.runner.Run(r.Context())
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success":                false,
			"error":                  err.Error(),
			"execution_time_seconds": int(result.ExecutionTime.Seconds()),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]any{
			"fixtures_processed":        result.FixturesProcessed,
			"recommendations_generated": result.RecommendationsGenerated,
			"top_picks_generated":       result.TopPicks,
			"quote_fetch_failures":      result.QuoteFetchFailures,
			"execution_time_seconds":    int(result.ExecutionTime.Seconds()),
		},
	})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": h.now().UTC(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		slog.Error(message, "error", err)
	}
	respondJSON(w, status, map[string]any{"success": false, "error": message})
}
