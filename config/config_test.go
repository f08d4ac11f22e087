package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaysean1/investment/ladder"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "invest.yaml")
	content := `
basket:
  - symbol: MSFT
    category: core
    history_file: prices/MSFT.csv
ladder:
  multipliers:
    core: 1
risk:
  limits:
    MSFT: 35
  target_min_pct: 60
  target_max_pct: 70
  risk_layer_total: 30000
  total_capital: 50000
ledger:
  type: sqlite
  db_path: ./ledger.sqlite
prices:
  tolerance_pct: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "MSFT", cfg.Basket[0].Symbol)
	assert.Equal(t, "sqlite", cfg.Ledger.Type)
	assert.InDelta(t, 35.0, cfg.Risk.Limits["MSFT"], 1e-9)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("basket: []\n"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "invest.yaml")
	require.NoError(t, Default().SaveToFile(path))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Basket, 4)
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown category", func(c *Config) { c.Basket[0].Category = "speculative" }},
		{"duplicate symbol", func(c *Config) { c.Basket[1].Symbol = c.Basket[0].Symbol }},
		{"missing history file", func(c *Config) { c.Basket[0].HistoryFile = "" }},
		{"bad limit", func(c *Config) { c.Risk.Limits["MSFT"] = 0 }},
		{"inverted target band", func(c *Config) { c.Risk.TargetMaxPct = 10 }},
		{"zero capital", func(c *Config) { c.Risk.TotalCapital = 0 }},
		{"bad ledger type", func(c *Config) { c.Ledger.Type = "parquet" }},
		{"csv ledger without path", func(c *Config) { c.Ledger.Path = "" }},
		{"zero tolerance", func(c *Config) { c.Prices.TolerancePct = 0 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLadderPolicyOverride(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Ladder.Multipliers["rhythm"] = 3

	p := cfg.LadderPolicy()
	assert.Equal(t, int64(3), p.Multipliers[ladder.Rhythm])
	assert.Equal(t, int64(1), p.Multipliers[ladder.Core])
}
