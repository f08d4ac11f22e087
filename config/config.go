// Package config loads the policy file that drives a daily run: the basket,
// ladder tables, risk limits and ledger location.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jaysean1/investment/ladder"
	"github.com/jaysean1/investment/risk"
)

// Config is the complete run configuration.
type Config struct {
	Basket []Instrument `json:"basket" yaml:"basket"`
	Ladder LadderConfig `json:"ladder" yaml:"ladder"`
	Risk   RiskConfig   `json:"risk" yaml:"risk"`
	Ledger LedgerConfig `json:"ledger" yaml:"ledger"`
	Prices PricesConfig `json:"prices" yaml:"prices"`
}

// Instrument ties a symbol to its basket role and price-history file.
type Instrument struct {
	Symbol      string `json:"symbol" yaml:"symbol"`
	Category    string `json:"category" yaml:"category"`
	HistoryFile string `json:"history_file" yaml:"history_file"`
}

// LadderConfig holds the per-category quantity multipliers.
type LadderConfig struct {
	Multipliers map[string]int64 `json:"multipliers" yaml:"multipliers"`
}

// RiskConfig holds limit tables and capital figures.
type RiskConfig struct {
	Limits         map[string]float64 `json:"limits" yaml:"limits"`
	TargetMinPct   float64            `json:"target_min_pct" yaml:"target_min_pct"`
	TargetMaxPct   float64            `json:"target_max_pct" yaml:"target_max_pct"`
	RiskLayerTotal float64            `json:"risk_layer_total" yaml:"risk_layer_total"`
	TotalCapital   float64            `json:"total_capital" yaml:"total_capital"`
}

// LedgerConfig selects the transaction-ledger backend.
type LedgerConfig struct {
	Type   string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// PricesConfig holds price-feed parameters.
type PricesConfig struct {
	TolerancePct float64 `json:"tolerance_pct" yaml:"tolerance_pct"`
}

var validCategories = map[string]bool{
	string(ladder.Core):      true,
	string(ladder.Rhythm):    true,
	string(ladder.Tactical):  true,
	string(ladder.Defensive): true,
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Basket) == 0 {
		return fmt.Errorf("basket must list at least one instrument")
	}
	seen := map[string]bool{}
	for _, inst := range c.Basket {
		if inst.Symbol == "" {
			return fmt.Errorf("basket instrument missing symbol")
		}
		if seen[inst.Symbol] {
			return fmt.Errorf("duplicate basket symbol: %s", inst.Symbol)
		}
		seen[inst.Symbol] = true
		if !validCategories[inst.Category] {
			return fmt.Errorf("%s: unknown category %q", inst.Symbol, inst.Category)
		}
		if inst.HistoryFile == "" {
			return fmt.Errorf("%s: history_file is required", inst.Symbol)
		}
	}
	for cat := range c.Ladder.Multipliers {
		if !validCategories[cat] {
			return fmt.Errorf("ladder multiplier for unknown category %q", cat)
		}
	}
	for symbol, limit := range c.Risk.Limits {
		if limit <= 0 || limit > 100 {
			return fmt.Errorf("risk limit for %s must be in (0,100], got %v", symbol, limit)
		}
	}
	if c.Risk.TargetMinPct <= 0 || c.Risk.TargetMaxPct <= c.Risk.TargetMinPct {
		return fmt.Errorf("risk target band must satisfy 0 < min < max")
	}
	if c.Risk.RiskLayerTotal <= 0 {
		return fmt.Errorf("risk.risk_layer_total must be positive")
	}
	if c.Risk.TotalCapital <= 0 {
		return fmt.Errorf("risk.total_capital must be positive")
	}
	switch c.Ledger.Type {
	case "csv":
		if c.Ledger.Path == "" {
			return fmt.Errorf("ledger.path required for CSV type")
		}
	case "sqlite":
		if c.Ledger.DBPath == "" {
			return fmt.Errorf("ledger.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("ledger.type must be 'csv' or 'sqlite'")
	}
	if c.Prices.TolerancePct <= 0 {
		return fmt.Errorf("prices.tolerance_pct must be positive")
	}
	return nil
}

// LadderPolicy builds the ladder policy from the configured multipliers,
// falling back to the standing tables for anything unset.
func (c *Config) LadderPolicy() ladder.Policy {
	p := ladder.DefaultPolicy()
	for cat, mult := range c.Ladder.Multipliers {
		p.Multipliers[ladder.Category(cat)] = mult
	}
	return p
}

// RiskPolicy builds the risk policy from the configured tables.
func (c *Config) RiskPolicy() risk.Policy {
	return risk.Policy{
		Limits:       c.Risk.Limits,
		TargetMinPct: c.Risk.TargetMinPct,
		TargetMaxPct: c.Risk.TargetMaxPct,
	}
}

// Default returns the standing four-instrument configuration.
func Default() *Config {
	return &Config{
		Basket: []Instrument{
			{Symbol: "MSFT", Category: "core", HistoryFile: "03_prices_all/MSFT_prices.csv"},
			{Symbol: "QQQ", Category: "rhythm", HistoryFile: "03_prices_all/QQQ_prices.csv"},
			{Symbol: "TSLA", Category: "tactical", HistoryFile: "03_prices_all/TSLA_prices.csv"},
			{Symbol: "GLD", Category: "defensive", HistoryFile: "03_prices_all/GLD_prices.csv"},
		},
		Ladder: LadderConfig{
			Multipliers: map[string]int64{
				"core": 1, "rhythm": 2, "tactical": 1, "defensive": 1,
			},
		},
		Risk: RiskConfig{
			Limits: map[string]float64{
				"MSFT": 35, "QQQ": 30, "TSLA": 15, "GLD": 15,
			},
			TargetMinPct:   60,
			TargetMaxPct:   70,
			RiskLayerTotal: 30000,
			TotalCapital:   50000,
		},
		Ledger: LedgerConfig{
			Type: "csv",
			Path: "05_transactions_all.csv",
		},
		Prices: PricesConfig{
			TolerancePct: 0.5,
		},
	}
}
