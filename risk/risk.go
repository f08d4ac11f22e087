// Package risk checks positions against the per-symbol limits of the risk
// layer and the overall risk/safe capital split.
package risk

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jaysean1/investment/holdings"
)

// ErrInvalidCapital is returned when a capital denominator is zero or
// negative. Percentages are never silently computed against such a base.
var ErrInvalidCapital = errors.New("capital must be positive")

// Status marks used in reports.
const (
	MarkOK   = "✅"
	MarkWarn = "⚠️"
)

// Policy holds the static risk tables: maximum share of the risk layer per
// symbol and the target band for the risk layer as a share of total capital.
// Injected rather than global so tests can substitute alternatives.
type Policy struct {
	Limits map[string]float64 // symbol → max % of risk-layer capital

	TargetMinPct float64 // inclusive lower bound of the risk-layer band
	TargetMaxPct float64 // inclusive upper bound
}

// DefaultPolicy returns the standing limits for the four-instrument basket
// and the 60–70% risk-layer target.
func DefaultPolicy() Policy {
	return Policy{
		Limits: map[string]float64{
			"MSFT": 35,
			"QQQ":  30,
			"TSLA": 15,
			"GLD":  15,
		},
		TargetMinPct: 60,
		TargetMaxPct: 70,
	}
}

// LimitStatus is the per-symbol result of a limit check.
type LimitStatus struct {
	Symbol      string
	CurrentPct  decimal.Decimal // share of the risk layer, 2dp
	LimitPct    float64
	WithinLimit bool
	Mark        string
}

// Allocation is the risk/safe layer split over total capital.
type Allocation struct {
	TotalInvested decimal.Decimal // 2dp
	TotalCapital  float64
	RiskLayerPct  decimal.Decimal // 2dp
	SafeLayerPct  decimal.Decimal // 2dp
	WithinTarget  bool
	Mark          string
}

// ValidateLimits checks each held symbol that has a limit in the policy.
// Symbols without holdings are absent from the result, not reported at 0%.
// The limit comparison is inclusive: sitting exactly on the cap is allowed.
func ValidateLimits(positions map[string]holdings.Position, riskLayerTotal float64, p Policy) (map[string]LimitStatus, error) {
	if riskLayerTotal <= 0 {
		return nil, ErrInvalidCapital
	}

	total := decimal.NewFromFloat(riskLayerTotal)
	out := map[string]LimitStatus{}

	for symbol, limitPct := range p.Limits {
		pos, ok := positions[symbol]
		if !ok {
			continue
		}

		currentPct := pos.TotalCost.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		within := currentPct.LessThanOrEqual(decimal.NewFromFloat(limitPct))

		st := LimitStatus{
			Symbol:      symbol,
			CurrentPct:  currentPct,
			LimitPct:    limitPct,
			WithinLimit: within,
			Mark:        MarkOK,
		}
		if !within {
			st.Mark = MarkWarn
		}
		out[symbol] = st
	}
	return out, nil
}

// ComputeAllocation sums all held positions and splits total capital into the
// risk and safe layers. The target band is inclusive at both ends.
func ComputeAllocation(positions map[string]holdings.Position, totalCapital float64, p Policy) (Allocation, error) {
	if totalCapital <= 0 {
		return Allocation{}, ErrInvalidCapital
	}

	invested := decimal.Zero
	for _, pos := range positions {
		invested = invested.Add(pos.TotalCost)
	}

	capital := decimal.NewFromFloat(totalCapital)
	riskPct := invested.Div(capital).Mul(decimal.NewFromInt(100)).Round(2)
	safePct := decimal.NewFromInt(100).Sub(riskPct)

	within := riskPct.GreaterThanOrEqual(decimal.NewFromFloat(p.TargetMinPct)) &&
		riskPct.LessThanOrEqual(decimal.NewFromFloat(p.TargetMaxPct))

	a := Allocation{
		TotalInvested: invested.Round(2),
		TotalCapital:  totalCapital,
		RiskLayerPct:  riskPct,
		SafeLayerPct:  safePct,
		WithinTarget:  within,
		Mark:          MarkOK,
	}
	if !within {
		a.Mark = MarkWarn
	}
	return a, nil
}
