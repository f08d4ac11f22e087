package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuotes(t *testing.T) {
	t.Parallel()

	quotes, err := parseQuotes([]string{"MSFT=513.58", "QQQ=601.2"})
	require.NoError(t, err)

	assert.InDelta(t, 513.58, quotes["MSFT"], 1e-9)
	assert.InDelta(t, 601.2, quotes["QQQ"], 1e-9)
}

func TestParseQuotesErrors(t *testing.T) {
	t.Parallel()

	for _, spec := range []string{"MSFT", "MSFT=", "MSFT=abc", "MSFT=-5"} {
		_, err := parseQuotes([]string{spec})
		assert.Error(t, err, spec)
	}
}
