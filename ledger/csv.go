package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jaysean1/investment/holdings"
)

// csvHeader matches the historical transactions file:
// 日期,操作类型,标的,数量,价格(USD),金额(USD)
var csvHeader = []string{"日期", "操作类型", "标的", "数量", "价格(USD)", "金额(USD)"}

const csvDateLayout = "2006-01-02"

// CSVLedger reads and appends the transactions CSV. Appends go straight to
// disk; List re-reads the file so external edits are picked up.
type CSVLedger struct {
	path string
	f    *os.File
	w    *csv.Writer
}

// NewCSV opens (or creates) the transactions file in append mode. A fresh
// file gets the header row.
func NewCSV(path string) (*CSVLedger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	switch {
	case info.Size() == 0:
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	default:
		// An existing file may lack a trailing newline; appending a record
		// onto its last row would corrupt both.
		if err := ensureTrailingNewline(path, f); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSVLedger{path: path, f: f, w: w}, nil
}

func ensureTrailingNewline(path string, w *os.File) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Seek(-1, io.SeekEnd); err != nil {
		return err
	}
	last := make([]byte, 1)
	if _, err := f.Read(last); err != nil {
		return err
	}
	if last[0] != '\n' {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}

func (l *CSVLedger) Append(r Record) error {
	amount := r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity))
	err := l.w.Write([]string{
		r.Date.Format(csvDateLayout),
		OpLabel(r.Op),
		r.Symbol,
		strconv.FormatInt(r.Quantity, 10),
		r.UnitPrice.StringFixed(2),
		amount.StringFixed(2),
	})
	if err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

func (l *CSVLedger) List() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", l.path, err)
	}

	var out []Record
	for _, row := range rows {
		if len(row) < 5 {
			continue
		}
		date, err := time.Parse(csvDateLayout, row[0])
		if err != nil {
			// Header row.
			continue
		}
		op, err := ParseOp(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", row[0], err)
		}
		qty, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s %s: bad quantity %q: %w", row[0], row[2], row[3], err)
		}
		price, err := decimal.NewFromString(row[4])
		if err != nil {
			return nil, fmt.Errorf("%s %s: bad price %q: %w", row[0], row[2], row[4], err)
		}

		out = append(out, Record{
			Transaction: holdings.Transaction{
				Date:      date,
				Op:        op,
				Symbol:    row[2],
				Quantity:  qty,
				UnitPrice: price,
			},
		})
	}
	return out, nil
}

func (l *CSVLedger) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}
