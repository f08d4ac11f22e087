package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHistory(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "MSFT_prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHistory(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, `Date,Open,High,Low,Close,Volume,source,mark,note
2025-11-05,505.10,512.00,504.50,511.20,18200000,yahoo_api,✅,
2025-11-06,511.30,514.80,509.90,513.58,17500000,yahoo_api,✅,
2025-11-07,,,,,,,,
`)

	candles, err := LoadHistory(path)
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), candles[0].Date)
	assert.InDelta(t, 511.20, candles[0].Close, 1e-9)
	assert.Equal(t, int64(17500000), candles[1].Volume)
	assert.Equal(t, "yahoo_api", candles[1].Source)
}

func TestLoadHistoryBadRow(t *testing.T) {
	t.Parallel()

	path := writeHistory(t, "2025-11-05,abc,512.00,504.50,511.20,100,,,\n")

	_, err := LoadHistory(path)
	assert.Error(t, err)
}

func TestLoadHistoryMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadHistory(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestCloses(t *testing.T) {
	t.Parallel()

	candles := []Candle{
		{Close: 1}, {Close: 2}, {Close: 3}, {Close: 4},
	}

	assert.Equal(t, []float64{3, 4}, Closes(candles, 2))
	assert.Equal(t, []float64{1, 2, 3, 4}, Closes(candles, 10))
}
