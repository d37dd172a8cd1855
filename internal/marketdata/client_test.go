package marketdata

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmolenaar/wealth-tracker/internal/apperrors"
)

// chartBody builds a minimal valid provider response for the given timestamps
// and closes.
func chartBody(symbol, currency string, timestamps []int64, closes []float64) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	cl := ""
	for i, c := range closes {
		if i > 0 {
			cl += ","
		}
		cl += fmt.Sprintf("%g", c)
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"meta": {"currency": %q, "symbol": %q, "exchangeName": "TST"},
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [%s]}]}
			}],
			"error": null
		}
	}`, currency, symbol, ts, cl)
}

func newTestClient(serverURL string) *Client {
	client := NewClient()
	client.BaseURL = serverURL
	return client
}

func TestDailyCloses(t *testing.T) {
	// Two trading days plus one market holiday (zero close, should be dropped).
	day1 := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC).Unix()
	day2 := time.Date(2024, 3, 2, 16, 0, 0, 0, time.UTC).Unix()
	day3 := time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC).Unix()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody("TEST", "USD", []int64{day1, day2, day3}, []float64{100.5, 0, 102.25}))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	points, err := client.DailyCloses("TEST", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DailyCloses failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points (holiday dropped), got %d", len(points))
	}
	if points[0].Date != "2024-03-01" || points[0].Close != 100.5 {
		t.Errorf("unexpected first point: %+v", points[0])
	}
	if points[1].Date != "2024-03-04" || points[1].Close != 102.25 {
		t.Errorf("unexpected second point: %+v", points[1])
	}
}

func TestDailyClosesCaching(t *testing.T) {
	// The second identical request within the TTL must be served from cache
	// without hitting the provider again.
	requests := 0
	day := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC).Unix()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, chartBody("TEST", "USD", []int64{day}, []float64{50}))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := client.DailyCloses("TEST", start, end); err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}

	if requests != 1 {
		t.Errorf("expected 1 provider request, got %d", requests)
	}
}

func TestRateLimitBackoff(t *testing.T) {
	// A 429 with Retry-After must park subsequent requests locally instead of
	// forwarding them to the provider.
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := client.DailyCloses("TEST", start, end)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	_, err = client.DailyCloses("TEST", start, end)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited on parked request, got %v", err)
	}

	if requests != 1 {
		t.Errorf("expected 1 provider request during backoff window, got %d", requests)
	}
}

func TestProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": "Not Found: no data found, symbol may be delisted"}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.DailyCloses("GONE", time.Now().AddDate(0, 0, -5), time.Now())
	if err == nil {
		t.Fatal("expected error for provider-reported failure")
	}
}

func TestUnknownSymbol(t *testing.T) {
	// An empty result set without a provider error means the symbol does not
	// exist; callers match on the sentinel to distinguish this from transport
	// failures.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.DailyCloses("NOSUCH", time.Now().AddDate(0, 0, -5), time.Now())
	if !errors.Is(err, apperrors.ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestSpotRate(t *testing.T) {
	day := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/USDEUR=X" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, chartBody("USDEUR=X", "EUR", []int64{day}, []float64{0.92}))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	rate, err := client.SpotRate("USD", "EUR")
	if err != nil {
		t.Fatalf("SpotRate failed: %v", err)
	}
	if rate != 0.92 {
		t.Errorf("expected rate 0.92, got %v", rate)
	}
}

func TestParseChartMismatchedLengths(t *testing.T) {
	day := time.Date(2024, 3, 1, 16, 0, 0, 0, time.UTC).Unix()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody("TEST", "USD", []int64{day, day + 86400}, []float64{100}))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.DailyCloses("TEST", time.Now().AddDate(0, 0, -5), time.Now())
	if err == nil {
		t.Fatal("expected error for mismatched timestamp/close lengths")
	}
}
