// Package ladder turns a market phase into tiered limit-buy orders below the
// current price.
package ladder

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jaysean1/investment/market"
)

// Category is the static policy role an instrument plays in the basket.
type Category string

const (
	Core      Category = "core"
	Rhythm    Category = "rhythm"
	Tactical  Category = "tactical"
	Defensive Category = "defensive"
)

// Tier is one limit-buy level: quantity of shares at a whole-currency price.
type Tier struct {
	Price    decimal.Decimal
	Quantity int64
}

// Policy holds the static ladder tables. Injected so tests and alternative
// profiles can substitute their own offsets and multipliers.
type Policy struct {
	// Offsets are percentage distances below the current price per phase,
	// least negative first. A phase with no entry produces no tiers.
	Offsets map[market.Phase][]float64

	// Multipliers scale the one-share base quantity per category. Unknown
	// categories fall back to 1.
	Multipliers map[Category]int64

	BaseQuantity int64
}

// DefaultPolicy returns the standing order-interval tables: wide tiers in a
// downtrend, tight tiers in consolidation, observation mode (no tiers) in an
// uptrend.
func DefaultPolicy() Policy {
	return Policy{
		Offsets: map[market.Phase][]float64{
			market.Downtrend:     {-5, -10, -15},
			market.Consolidation: {-2, -4, -6},
		},
		Multipliers: map[Category]int64{
			Core:      1,
			Rhythm:    2,
			Tactical:  1,
			Defensive: 1,
		},
		BaseQuantity: 1,
	}
}

// Generate builds the order ladder for one instrument. Tiers preserve the
// offset order of the policy table.
//
// Tier prices are current × (1 + offset/100) rounded half away from zero to
// the nearest whole currency unit, so a tier landing exactly on X.50 rounds
// up. Any phase/category combination is valid; there are no error cases.
func Generate(phase market.Phase, current float64, category Category, p Policy) []Tier {
	offsets, ok := p.Offsets[phase]
	if !ok {
		return nil
	}

	mult, ok := p.Multipliers[category]
	if !ok {
		mult = 1
	}
	qty := p.BaseQuantity * mult

	cur := decimal.NewFromFloat(current)
	hundred := decimal.NewFromInt(100)

	tiers := make([]Tier, 0, len(offsets))
	for _, off := range offsets {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(off).Div(hundred))
		tiers = append(tiers, Tier{
			Price:    cur.Mul(factor).Round(0),
			Quantity: qty,
		})
	}
	return tiers
}

// FormatOrderLine renders one order-log line:
//
//	2025-11-07 | MSFT(买入) | 1 @ 505 / 1 @ 500 / 1 @ 495
//
// An empty ladder yields an empty string; the caller skips the symbol.
func FormatOrderLine(date, symbol, opLabel string, tiers []Tier) string {
	if len(tiers) == 0 {
		return ""
	}

	parts := make([]string, 0, len(tiers))
	for _, tier := range tiers {
		parts = append(parts, fmt.Sprintf("%d @ %s", tier.Quantity, tier.Price.StringFixed(0)))
	}
	return fmt.Sprintf("%s | %s(%s) | %s", date, symbol, opLabel, strings.Join(parts, " / "))
}
