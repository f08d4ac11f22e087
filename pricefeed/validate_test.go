package pricefeed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCloseWithinTolerance(t *testing.T) {
	t.Parallel()

	// Feed close for 2025-11-07 is 501.00.
	c := stubClient(t, chartJSON("America/New_York", "2025-11-06", "2025-11-07"))

	v, err := c.ValidateClose(context.Background(), "MSFT", "2025-11-07", 502.00, 0.5)
	require.NoError(t, err)

	assert.True(t, v.Valid)
	assert.Equal(t, "✅", v.Mark)
	assert.InDelta(t, 501.00, v.RefClose, 1e-9)
	assert.InDelta(t, 0.1996, v.DiffPct, 1e-3)
}

func TestValidateCloseOutsideTolerance(t *testing.T) {
	t.Parallel()

	c := stubClient(t, chartJSON("America/New_York", "2025-11-07"))

	v, err := c.ValidateClose(context.Background(), "MSFT", "2025-11-07", 510.00, 0.5)
	require.NoError(t, err)

	assert.False(t, v.Valid)
	assert.Equal(t, "⚠️", v.Mark)
}

func TestValidateCloseNoData(t *testing.T) {
	t.Parallel()

	c := stubClient(t, chartJSON("America/New_York", "2025-11-07"))

	_, err := c.ValidateClose(context.Background(), "MSFT", "2025-12-25", 500.00, 0.5)
	assert.ErrorIs(t, err, ErrNoData)
}
