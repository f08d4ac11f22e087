package pricefeed

import (
	"context"
	"fmt"
	"math"
)

// Validation is the result of checking a manually entered close against the
// feed.
type Validation struct {
	Valid    bool
	RefClose float64
	DiffPct  float64
	Mark     string
}

// ValidateClose compares price against the feed's close for symbol on date
// (YYYY-MM-DD) using a relative tolerance in percent. Returns ErrNoData when
// the feed has no candle for that date.
func (c *Client) ValidateClose(ctx context.Context, symbol, date string, price, tolerancePct float64) (Validation, error) {
	history, err := c.DailyHistory(ctx, symbol)
	if err != nil {
		return Validation{}, err
	}

	day, ok := history[date]
	if !ok {
		return Validation{}, fmt.Errorf("%s on %s: %w", symbol, date, ErrNoData)
	}
	if day.Close <= 0 {
		return Validation{}, fmt.Errorf("%s on %s: reference close is %v", symbol, date, day.Close)
	}

	diffPct := math.Abs((price - day.Close) / day.Close * 100)
	v := Validation{
		Valid:    diffPct <= tolerancePct,
		RefClose: day.Close,
		DiffPct:  diffPct,
		Mark:     "✅",
	}
	if !v.Valid {
		v.Mark = "⚠️"
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("date", date).
		Float64("price", price).
		Float64("ref", day.Close).
		Float64("diff_pct", diffPct).
		Bool("valid", v.Valid).
		Msg("validated close")
	return v, nil
}
