// Package market provides daily price history types and the trend
// classification used to decide whether new buy orders should be laddered.
package market

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Candle represents one daily OHLCV row as stored in the price-history CSVs.
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64

	// Source and Mark carry the provenance columns of the price files
	// ("yahoo_api", validation mark). They are informational only.
	Source string
	Mark   string
}

const dateLayout = "2006-01-02"

// LoadHistory reads a price-history CSV and returns its candles in file order
// (chronological ascending).
//
// The files have the columns Date,Open,High,Low,Close,Volume,source,mark,note.
// Header rows, blank lines and placeholder rows (a date with no prices yet)
// are skipped rather than treated as errors, so a file that is waiting for a
// fill from the price feed still loads.
func LoadHistory(path string) ([]Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price history: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read price history %s: %w", path, err)
	}

	var candles []Candle
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		date, err := time.Parse(dateLayout, row[0])
		if err != nil {
			// Header or junk line.
			continue
		}
		if row[4] == "" {
			// Placeholder row awaiting a price fill.
			continue
		}

		c := Candle{Date: date}
		if c.Open, err = strconv.ParseFloat(row[1], 64); err != nil {
			return nil, fmt.Errorf("%s: bad open %q: %w", row[0], row[1], err)
		}
		if c.High, err = strconv.ParseFloat(row[2], 64); err != nil {
			return nil, fmt.Errorf("%s: bad high %q: %w", row[0], row[2], err)
		}
		if c.Low, err = strconv.ParseFloat(row[3], 64); err != nil {
			return nil, fmt.Errorf("%s: bad low %q: %w", row[0], row[3], err)
		}
		if c.Close, err = strconv.ParseFloat(row[4], 64); err != nil {
			return nil, fmt.Errorf("%s: bad close %q: %w", row[0], row[4], err)
		}
		if c.Volume, err = strconv.ParseInt(row[5], 10, 64); err != nil {
			return nil, fmt.Errorf("%s: bad volume %q: %w", row[0], row[5], err)
		}
		if len(row) > 6 {
			c.Source = row[6]
		}
		if len(row) > 7 {
			c.Mark = row[7]
		}
		candles = append(candles, c)
	}

	return candles, nil
}

// Closes returns up to the last n closing prices, oldest first.
func Closes(candles []Candle, n int) []float64 {
	start := 0
	if len(candles) > n {
		start = len(candles) - n
	}
	out := make([]float64, 0, len(candles)-start)
	for _, c := range candles[start:] {
		out = append(out, c.Close)
	}
	return out
}
