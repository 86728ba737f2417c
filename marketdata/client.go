// Package marketdata fetches real crop price trends from an external provider.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-agroadvisor/engine"
	"go-agroadvisor/models"
)

// APIKeyHeader carries the provider credential.
const APIKeyHeader = "X-API-Key"

// ErrNoData is returned when the provider answers with no series.
var ErrNoData = errors.New("marketdata: provider returned no series")

// Provider supplies real price trends for a set of crops.
type Provider interface {
	FetchTrends(ctx context.Context, crops []string, days int) (models.MarketTrendSeries, error)
}

// Client talks to the price-trend HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a client for baseURL with the given request timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type trendsResponse struct {
	Trends []models.CropSeries `json:"trends"`
}

// FetchTrends requests days of prices for crops and adapts them into a real
// series. Every series in the answer must have the same length.
func (c *Client) FetchTrends(ctx context.Context, crops []string, days int) (models.MarketTrendSeries, error) {
	q := url.Values{}
	q.Set("crops", strings.Join(crops, ","))
	q.Set("days", strconv.Itoa(days))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/trends?"+q.Encode(), nil)
	if err != nil {
		return models.MarketTrendSeries{}, fmt.Errorf("marketdata: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.MarketTrendSeries{}, fmt.Errorf("marketdata: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.MarketTrendSeries{}, fmt.Errorf("marketdata: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload trendsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.MarketTrendSeries{}, fmt.Errorf("marketdata: decode response: %w", err)
	}
	if len(payload.Trends) == 0 {
		return models.MarketTrendSeries{}, ErrNoData
	}
	return engine.FromRealTrends(payload.Trends)
}
