// Package marketdata wraps the external price provider's chart API. It is a
// collaborator of the valuation engine, never called by it: the price service
// uses this client to extend the stored price history, and the engine only
// ever sees the resolved in-memory series.
package marketdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// ErrRateLimited indicates the provider told us to back off; callers should
// retry after the window passes rather than hammer the API.
var ErrRateLimited = errors.New("price provider rate limited")

// Client fetches daily closing prices and FX rates from the provider.
// Responses are cached in memory for a short TTL, and a 429 response parks
// all requests until the provider's Retry-After window has passed.
type Client struct {
	// BaseURL is overridable for tests.
	BaseURL string

	httpClient *http.Client
	cacheTTL   time.Duration

	mu         sync.Mutex
	cache      map[string]cacheEntry
	retryAfter time.Time
}

type cacheEntry struct {
	chart   Chart
	expires time.Time
}

// NewClient creates a provider client with default HTTP settings and a
// 15-minute response cache.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cacheTTL:   15 * time.Minute,
		cache:      make(map[string]cacheEntry),
	}
}

// DailyCloses fetches daily closing prices for a symbol over a date range,
// normalized to one point per calendar day.
func (c *Client) DailyCloses(symbol string, startDate, endDate time.Time) ([]ClosePoint, error) {
	url := fmt.Sprintf(
		"%s/%s?interval=1d&period1=%d&period2=%d",
		c.BaseURL, symbol, startDate.Unix(), endDate.Unix(),
	)

	chart, err := c.fetchChart(symbol, url)
	if err != nil {
		return nil, err
	}
	return chart.Points, nil
}

// LatestClose fetches the most recent available closing price for a symbol,
// using the provider's trailing five-day range.
func (c *Client) LatestClose(symbol string) (ClosePoint, error) {
	url := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.BaseURL, symbol)

	chart, err := c.fetchChart(symbol, url)
	if err != nil {
		return ClosePoint{}, err
	}
	if len(chart.Points) == 0 {
		return ClosePoint{}, fmt.Errorf("no prices returned for symbol %s", symbol)
	}
	return chart.Points[len(chart.Points)-1], nil
}

// SpotRate fetches the latest exchange rate for a currency pair via the
// provider's FX symbols (e.g. "USDEUR=X").
func (c *Client) SpotRate(fromCurrency, toCurrency string) (float64, error) {
	point, err := c.LatestClose(fmt.Sprintf("%s%s=X", fromCurrency, toCurrency))
	if err != nil {
		return 0, err
	}
	return point.Close, nil
}

// fetchChart serves a chart from cache when fresh, otherwise queries the
// provider and caches the parsed result.
func (c *Client) fetchChart(symbol, url string) (Chart, error) {
	c.mu.Lock()
	if entry, ok := c.cache[url]; ok && time.Now().Before(entry.expires) {
		c.mu.Unlock()
		return entry.chart, nil
	}
	if until := c.retryAfter; time.Now().Before(until) {
		c.mu.Unlock()
		return Chart{}, fmt.Errorf("%w until %s", ErrRateLimited, until.UTC().Format(time.RFC3339))
	}
	c.mu.Unlock()

	response, err := c.query(url)
	if err != nil {
		return Chart{}, err
	}

	chart, err := parseChart(symbol, response)
	if err != nil {
		return Chart{}, err
	}

	c.mu.Lock()
	c.cache[url] = cacheEntry{chart: chart, expires: time.Now().Add(c.cacheTTL)}
	c.mu.Unlock()

	return chart, nil
}

// query executes one HTTP request against the provider and decodes the raw
// response. A 429 status records the provider's Retry-After window.
func (c *Client) query(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		delay := 60 * time.Second
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, err := strconv.Atoi(header); err == nil {
				delay = time.Duration(seconds) * time.Second
			}
		}
		c.mu.Lock()
		c.retryAfter = time.Now().Add(delay)
		c.mu.Unlock()
		return Response{}, fmt.Errorf("%w: retry after %s", ErrRateLimited, delay)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("provider error: %s", *response.Chart.Error)
	}

	return response, nil
}

// parseChart validates a raw response and converts it into date-keyed close
// points. Timestamps are truncated to their UTC calendar date; null closes
// (market holidays) are dropped.
func parseChart(symbol string, response Response) (Chart, error) {
	if len(response.Chart.Result) == 0 {
		return Chart{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}

	result := response.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return Chart{}, fmt.Errorf("no price data returned for symbol %s", symbol)
	}
	if len(result.Indicators.Quote) == 0 {
		return Chart{}, fmt.Errorf("no quotes returned for symbol %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return Chart{}, fmt.Errorf("mismatched data lengths for symbol %s", symbol)
	}

	points := make([]ClosePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == 0 {
			continue
		}
		points = append(points, ClosePoint{
			Date:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Close: closes[i],
		})
	}

	return Chart{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Points:   points,
	}, nil
}
