package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/jaysean1/investment/holdings"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id TEXT PRIMARY KEY,
	date DATETIME NOT NULL,
	op TEXT NOT NULL,
	symbol TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	unit_price REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions(symbol);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
`

// SQLiteLedger stores transactions in a SQLite database. Records get a ULID
// id on append, so insertion order is recoverable from the primary key.
type SQLiteLedger struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteLedger{db: db}, nil
}

func (l *SQLiteLedger) Append(r Record) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	price, _ := r.UnitPrice.Float64()
	_, err := l.db.Exec(`
		INSERT INTO transactions (id, date, op, symbol, quantity, unit_price)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Date, string(r.Op), r.Symbol, r.Quantity, price,
	)
	return err
}

func (l *SQLiteLedger) List() ([]Record, error) {
	return l.query(`
		SELECT id, date, op, symbol, quantity, unit_price
		FROM transactions
		ORDER BY date ASC, id ASC`)
}

// ListBySymbol returns one symbol's transactions, oldest first.
func (l *SQLiteLedger) ListBySymbol(symbol string) ([]Record, error) {
	return l.query(`
		SELECT id, date, op, symbol, quantity, unit_price
		FROM transactions
		WHERE symbol = ?
		ORDER BY date ASC, id ASC`, symbol)
}

// ListBetween returns transactions dated within [start, end).
func (l *SQLiteLedger) ListBetween(start, end time.Time) ([]Record, error) {
	return l.query(`
		SELECT id, date, op, symbol, quantity, unit_price
		FROM transactions
		WHERE date >= ? AND date < ?
		ORDER BY date ASC, id ASC`, start, end)
}

func (l *SQLiteLedger) query(q string, args ...any) ([]Record, error) {
	rows, err := l.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec   Record
			op    string
			price float64
		)
		if err := rows.Scan(&rec.ID, &rec.Date, &op, &rec.Symbol, &rec.Quantity, &price); err != nil {
			return nil, err
		}
		rec.Op = holdings.Op(op)
		if rec.Op != holdings.Buy && rec.Op != holdings.Sell {
			return nil, fmt.Errorf("record %s: unknown op %q", rec.ID, op)
		}
		rec.UnitPrice = decimal.NewFromFloat(price)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}
