// Package nba provides the HTTP client for the upstream NBA statistics API.
//
// The API returns tabular result sets ({name, headers, rowSet} triples);
// rows are surfaced to callers as header-keyed maps so downstream parsing
// never assumes a column exists. Requests are rate-limited via a token
// bucket. There is no retry policy: a failed fetch is the caller's signal
// to degrade, and a provider hang is bounded only by the client timeout.
package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/hoopsight/hoopsight/internal/stats"
)

// Client is the shared HTTP client for all stats endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a stats API client with rate limiting.
func NewClient(baseURL string, requestsPerMinute int, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// resultSet is one named table in a stats API response.
type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

// get performs a rate-limited GET request to a stats endpoint.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*statsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; hoopsight/1.0)")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats API %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var result statsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}

// table returns the named result set, or nil if the response lacks it.
func (r *statsResponse) table(name string) *resultSet {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i]
		}
	}
	return nil
}

// rows zips a result set's headers with each row's values.
func (rs *resultSet) rows() []stats.Row {
	if rs == nil || len(rs.RowSet) == 0 {
		return nil
	}
	out := make([]stats.Row, 0, len(rs.RowSet))
	for _, values := range rs.RowSet {
		row := make(stats.Row, len(rs.Headers))
		for i, h := range rs.Headers {
			if i < len(values) {
				row[h] = values[i]
			}
		}
		out = append(out, row)
	}
	return out
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
