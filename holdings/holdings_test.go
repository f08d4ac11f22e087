package holdings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(op Op, symbol string, qty int64, price float64) Transaction {
	return Transaction{
		Date:      time.Date(2025, 11, 7, 0, 0, 0, 0, time.UTC),
		Op:        op,
		Symbol:    symbol,
		Quantity:  qty,
		UnitPrice: decimal.NewFromFloat(price),
	}
}

func TestComputeWeightedAverage(t *testing.T) {
	t.Parallel()

	positions := Compute([]Transaction{
		tx(Buy, "MSFT", 10, 100),
		tx(Buy, "MSFT", 5, 120),
		tx(Sell, "MSFT", 3, 130),
	}, AverageAll)

	pos, ok := positions["MSFT"]
	require.True(t, ok)

	assert.Equal(t, int64(12), pos.Quantity)
	// (10*100 + 5*120) / 15 — the sell must not shift the average.
	assert.Equal(t, "106.6667", pos.AvgCost.StringFixed(4))
	assert.Equal(t, "1280.00", pos.TotalCost.StringFixed(2))
}

func TestComputeSellDoesNotShiftAverage(t *testing.T) {
	t.Parallel()

	before := Compute([]Transaction{
		tx(Buy, "QQQ", 10, 100),
		tx(Buy, "QQQ", 5, 120),
	}, AverageAll)
	after := Compute([]Transaction{
		tx(Buy, "QQQ", 10, 100),
		tx(Buy, "QQQ", 5, 120),
		tx(Sell, "QQQ", 3, 999),
	}, AverageAll)

	assert.True(t, before["QQQ"].AvgCost.Equal(after["QQQ"].AvgCost))
	assert.Equal(t, before["QQQ"].Quantity-3, after["QQQ"].Quantity)
}

func TestComputeFlatPositionOmitted(t *testing.T) {
	t.Parallel()

	positions := Compute([]Transaction{
		tx(Buy, "TSLA", 5, 200),
		tx(Sell, "TSLA", 5, 250),
	}, AverageAll)

	_, ok := positions["TSLA"]
	assert.False(t, ok)
}

func TestComputeOversoldOmitted(t *testing.T) {
	t.Parallel()

	positions := Compute([]Transaction{
		tx(Buy, "GLD", 2, 150),
		tx(Sell, "GLD", 5, 160),
	}, AverageAll)

	assert.Empty(t, positions)
}

func TestComputeMultipleSymbols(t *testing.T) {
	t.Parallel()

	positions := Compute([]Transaction{
		tx(Buy, "MSFT", 1, 500),
		tx(Buy, "QQQ", 2, 600),
		tx(Buy, "GLD", 3, 150),
		tx(Sell, "GLD", 3, 155),
	}, AverageAll)

	require.Len(t, positions, 2)
	assert.Equal(t, int64(1), positions["MSFT"].Quantity)
	assert.Equal(t, "1200.00", positions["QQQ"].TotalCost.StringFixed(2))
}

// TotalCost is derived from the unrounded average, not the 4dp one.
func TestComputeRoundingOrder(t *testing.T) {
	t.Parallel()

	// Deriving TotalCost from the 4dp average would give 9990.00 here.
	positions := Compute([]Transaction{
		tx(Buy, "TEST", 30000, 0.3333333333333333),
	}, AverageAll)

	pos := positions["TEST"]
	assert.Equal(t, "0.3333", pos.AvgCost.StringFixed(4))
	assert.Equal(t, "10000.00", pos.TotalCost.StringFixed(2))
}

func TestComputeEmptyLog(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Compute(nil, AverageAll))
}
