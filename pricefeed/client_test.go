package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chartJSON builds a minimal v8 chart payload. Timestamps are noon UTC so the
// New York calendar date matches the UTC date.
func chartJSON(timezone string, days ...string) string {
	ts := ""
	closes := ""
	for i, d := range days {
		t, _ := time.Parse("2006-01-02", d)
		if i > 0 {
			ts += ","
			closes += ","
		}
		ts += fmt.Sprintf("%d", t.Add(17*time.Hour).Unix())
		closes += fmt.Sprintf("%.2f", 500.0+float64(i))
	}
	return fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"timezone":%q},
		"timestamp":[%s],
		"indicators":{"quote":[{
			"open":[%s],"high":[%s],"low":[%s],"close":[%s],
			"volume":[%s]
		}]}
	}],"error":null}}`, timezone, ts, closes, closes, closes, closes, volumes(len(days)))
}

func volumes(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += "1000"
	}
	return out
}

func stubClient(t *testing.T, body string) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)

	return NewClientWithBaseURL(server.URL, zerolog.Nop())
}

func TestDailyHistory(t *testing.T) {
	t.Parallel()

	c := stubClient(t, chartJSON("America/New_York", "2025-11-06", "2025-11-07"))

	history, err := c.DailyHistory(context.Background(), "MSFT")
	require.NoError(t, err)
	require.Len(t, history, 2)

	day, ok := history["2025-11-07"]
	require.True(t, ok)
	assert.InDelta(t, 501.0, day.Close, 1e-9)
	assert.Equal(t, int64(1000), day.Volume)
}

func TestDailyHistorySkipsNullRows(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":[{
		"meta":{"timezone":"America/New_York"},
		"timestamp":[1762534800,1762621200],
		"indicators":{"quote":[{
			"open":[500.0,null],"high":[505.0,null],"low":[495.0,null],
			"close":[503.0,null],"volume":[1000,null]
		}]}
	}],"error":null}}`
	c := stubClient(t, body)

	history, err := c.DailyHistory(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestDailyHistoryUnknownTimezoneFallsBack(t *testing.T) {
	t.Parallel()

	c := stubClient(t, chartJSON("EDT", "2025-11-07"))

	history, err := c.DailyHistory(context.Background(), "MSFT")
	require.NoError(t, err)
	_, ok := history["2025-11-07"]
	assert.True(t, ok)
}

func TestDailyHistoryEmptyResult(t *testing.T) {
	t.Parallel()

	c := stubClient(t, `{"chart":{"result":[],"error":null}}`)

	_, err := c.DailyHistory(context.Background(), "MSFT")
	assert.Error(t, err)
}

func TestDailyHistoryHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	c := NewClientWithBaseURL(server.URL, zerolog.Nop())
	_, err := c.DailyHistory(context.Background(), "MSFT")
	assert.Error(t, err)
}
