// Package holdings derives per-symbol positions from the transaction log.
package holdings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Op is the transaction operation type.
type Op string

const (
	Buy  Op = "buy"
	Sell Op = "sell"
)

// Transaction is one immutable row of the ledger.
type Transaction struct {
	Date      time.Time
	Op        Op
	Symbol    string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CostBasisPolicy selects how the average cost reacts to sells.
type CostBasisPolicy string

// AverageAll divides the cost of every historical buy by the total bought
// quantity. Sells reduce the net quantity but never the recorded average —
// a deliberate approximation the holdings reports have always assumed, kept
// as a named policy so a true FIFO variant can be added without changing the
// interface.
const AverageAll CostBasisPolicy = "average-all"

// Position is the derived holding for one symbol.
//
// AvgCost is rounded to 4 decimal places. TotalCost is net quantity times the
// unrounded average, then rounded to 2 places; the two roundings are
// independent, so TotalCost is not exactly Quantity × AvgCost.
type Position struct {
	Symbol    string
	Quantity  int64
	AvgCost   decimal.Decimal
	TotalCost decimal.Decimal
}

// Compute aggregates the transaction log into positions, one per symbol with
// a positive net quantity. Symbols that were fully sold (or oversold) are
// omitted. The input is never mutated and iteration order does not affect the
// result.
//
// AverageAll is the only cost-basis policy currently implemented; the
// parameter keeps the signature stable for a future FIFO variant.
func Compute(txs []Transaction, policy CostBasisPolicy) map[string]Position {
	type sums struct {
		boughtQty  int64
		boughtCost decimal.Decimal
		soldQty    int64
	}

	bySymbol := map[string]*sums{}
	for _, tx := range txs {
		s, ok := bySymbol[tx.Symbol]
		if !ok {
			s = &sums{}
			bySymbol[tx.Symbol] = s
		}
		switch tx.Op {
		case Buy:
			s.boughtQty += tx.Quantity
			s.boughtCost = s.boughtCost.Add(tx.UnitPrice.Mul(decimal.NewFromInt(tx.Quantity)))
		case Sell:
			s.soldQty += tx.Quantity
		}
	}

	out := map[string]Position{}
	for symbol, s := range bySymbol {
		netQty := s.boughtQty - s.soldQty
		if netQty <= 0 {
			continue
		}

		avg := s.boughtCost.Div(decimal.NewFromInt(s.boughtQty))
		out[symbol] = Position{
			Symbol:    symbol,
			Quantity:  netQty,
			AvgCost:   avg.Round(4),
			TotalCost: avg.Mul(decimal.NewFromInt(netQty)).Round(2),
		}
	}
	return out
}
