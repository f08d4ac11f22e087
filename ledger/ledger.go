// Package ledger persists the append-only transaction log behind the
// position accounting.
package ledger

import (
	"fmt"

	"github.com/jaysean1/investment/holdings"
)

// Record is one persisted ledger row. ID is assigned on append by the SQLite
// backend; the historical CSV ledger has no id column, so it stays empty
// there.
type Record struct {
	ID string
	holdings.Transaction
}

// Ledger is an append-only store of transactions.
type Ledger interface {
	Append(Record) error
	List() ([]Record, error)
	Close() error
}

// Transactions extracts the bare transaction log from ledger records, in
// record order.
func Transactions(records []Record) []holdings.Transaction {
	out := make([]holdings.Transaction, 0, len(records))
	for _, r := range records {
		out = append(out, r.Transaction)
	}
	return out
}

// Operation labels as written in the historical ledger file.
const (
	labelBuy  = "买入"
	labelSell = "卖出"
)

// ParseOp maps an operation label to its Op. Both the Chinese labels of the
// historical ledger and plain BUY/SELL are accepted.
func ParseOp(label string) (holdings.Op, error) {
	switch label {
	case labelBuy, "BUY", "buy", "Buy":
		return holdings.Buy, nil
	case labelSell, "SELL", "sell", "Sell":
		return holdings.Sell, nil
	}
	return "", fmt.Errorf("unknown operation label %q", label)
}

// OpLabel renders an Op with the label style the ledger file uses.
func OpLabel(op holdings.Op) string {
	if op == holdings.Sell {
		return labelSell
	}
	return labelBuy
}
