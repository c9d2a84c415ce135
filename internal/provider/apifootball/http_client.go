package apifootball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/agsports/valuepicks/internal/pkg/config"
)

// API-Football "Goals Over/Under" bet id.
const betGoalsOverUnder = "5"

type httpClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	host    string
}

func newHTTPClient(cfg *config.APIFootballConfig) *httpClient {
	host := ""
	if u, err := url.Parse(cfg.BaseURL); err == nil {
		host = u.Host
	}
	return &httpClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		host:    host,
	}
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// getFixtures fetches not-started fixtures for one league on one date.
func (c *httpClient) getFixtures(ctx context.Context, leagueID int64, date string) ([]byte, error) {
	params := url.Values{}
	params.Set("league", fmt.Sprintf("%d", leagueID))
	params.Set("date", date)
	params.Set("status", "NS")
	return c.get(ctx, "/fixtures", params)
}

// getOdds fetches the over/under goals odds for one fixture.
func (c *httpClient) getOdds(ctx context.Context, fixtureID int64) ([]byte, error) {
	params := url.Values{}
	params.Set("fixture", fmt.Sprintf("%d", fixtureID))
	params.Set("bet", betGoalsOverUnder)
	return c.get(ctx, "/odds", params)
}
