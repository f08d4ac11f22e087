// Package pricefeed retrieves daily prices from the Yahoo Finance chart
// endpoint and keeps the local price-history CSVs current.
package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Yahoo Finance chart API.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

const fallbackTimezone = "America/New_York"

// ErrNoData is returned when the feed has no row for the requested date.
var ErrNoData = errors.New("no price data for date")

// Daily is one day's OHLCV from the feed.
type Daily struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Client fetches daily candles for a symbol.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a price-feed client. The chart endpoint needs no
// credentials.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		log: log,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string, log zerolog.Logger) *Client {
	c := NewClient(log)
	c.baseURL = baseURL
	return c
}

// chartResponse mirrors the v8 chart payload, pointers where the API sends
// nulls for half-formed rows.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Timezone string `json:"timezone"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// DailyHistory fetches roughly the last ten daily candles for symbol and
// returns them keyed by exchange-local date (YYYY-MM-DD). Rows with missing
// values are dropped.
func (c *Client) DailyHistory(ctx context.Context, symbol string) (map[string]Daily, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=10d&includePrePost=false", c.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: status %d: %s", symbol, resp.StatusCode, body)
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode chart response for %s: %w", symbol, err)
	}

	results := parsed.Chart.Result
	if len(results) == 0 || len(results[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}
	r0 := results[0]
	quote := r0.Indicators.Quote[0]

	// The feed reports timestamps in UTC seconds; trading dates are the
	// exchange's local calendar days. Abbreviated zone names fall back to
	// the US equity default.
	loc, err := time.LoadLocation(r0.Meta.Timezone)
	if err != nil {
		loc, _ = time.LoadLocation(fallbackTimezone)
	}

	out := make(map[string]Daily, len(r0.Timestamp))
	for i, ts := range r0.Timestamp {
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		cl := at(quote.Close, i)
		v := at(quote.Volume, i)
		if o == nil || h == nil || l == nil || cl == nil || v == nil {
			continue
		}

		date := time.Unix(ts, 0).In(loc).Format("2006-01-02")
		out[date] = Daily{
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *cl,
			Volume: *v,
		}
	}

	c.log.Debug().Str("symbol", symbol).Int("days", len(out)).Msg("fetched daily history")
	return out, nil
}

func at[T any](xs []*T, i int) *T {
	if i >= len(xs) {
		return nil
	}
	return xs[i]
}
