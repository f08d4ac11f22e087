package market

// Phase is the short-term trend classification for an instrument.
type Phase string

const (
	Downtrend     Phase = "downtrend"
	Consolidation Phase = "consolidation"
	Uptrend       Phase = "uptrend"
)

// Phase thresholds relative to the 5-day simple moving average.
const (
	downtrendFactor = 0.97
	uptrendFactor   = 1.03
)

// Snapshot is the result of classifying one instrument. SMA10 and
// VolatilityPct are diagnostics: they are reported alongside the phase but do
// not influence it.
type Snapshot struct {
	Phase         Phase
	SMA5          float64
	SMA10         float64
	VolatilityPct float64
}

// Classify derives the market phase from recent closing prices (oldest first)
// and the current price.
//
// The rule compares the current price against the 5-day SMA: more than 3%
// below is a downtrend, more than 3% above an uptrend, anything in between —
// including exactly ±3%, since the comparisons are strict — is consolidation.
// Fewer than 5 closes is not enough signal, so the conservative default is
// consolidation with zeroed diagnostics.
func Classify(recent []float64, current float64) Snapshot {
	if len(recent) < 5 {
		return Snapshot{Phase: Consolidation}
	}

	sma5 := mean(recent[len(recent)-5:])
	sma10 := sma5
	if len(recent) >= 10 {
		sma10 = mean(recent[len(recent)-10:])
	}

	last5 := recent[len(recent)-5:]
	high, low := last5[0], last5[0]
	for _, p := range last5[1:] {
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
	}
	volatility := 0.0
	if low > 0 {
		volatility = (high - low) / low * 100
	}

	snap := Snapshot{
		Phase:         Consolidation,
		SMA5:          sma5,
		SMA10:         sma10,
		VolatilityPct: volatility,
	}

	switch {
	case current < sma5*downtrendFactor:
		snap.Phase = Downtrend
	case current > sma5*uptrendFactor:
		snap.Phase = Uptrend
	}
	return snap
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
