package pricefeed

import (
	"fmt"
	"os"
	"strings"
)

// Action describes what UpdateCSV did with one target date.
type Action string

const (
	Filled   Action = "filled"   // a blank placeholder row got its prices
	Appended Action = "appended" // the date was new and added at the end
	Skipped  Action = "skipped"  // no feed data, or the row already had prices
)

// UpdateCSV brings a price-history file up to date for the given dates.
//
// Existing rows with valid prices are never overwritten: only blank
// placeholder rows (a date followed by empty price columns) are filled, and
// dates missing from the file entirely are appended. Rows are written in the
// file's 9-column format with prices at 2 decimals and a yahoo_api
// provenance tail.
func UpdateCSV(path string, records map[string]Daily, dates []string) (map[string]Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price history: %w", err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	// date → line index
	index := map[string]int{}
	for i, raw := range lines {
		row := strings.TrimRight(raw, "\r\n")
		if row == "" || strings.HasPrefix(row, "Date,") {
			continue
		}
		date, _, _ := strings.Cut(row, ",")
		if date != "" {
			index[date] = i
		}
	}

	actions := map[string]Action{}
	for _, d := range dates {
		day, ok := records[d]
		if !ok {
			actions[d] = Skipped
			continue
		}

		newLine := fmt.Sprintf("%s,%.2f,%.2f,%.2f,%.2f,%d,yahoo_api,✅,\n",
			d, day.Open, day.High, day.Low, day.Close, day.Volume)

		idx, exists := index[d]
		if exists {
			cols := strings.Split(strings.TrimRight(lines[idx], "\r\n"), ",")
			if isBlankRow(cols) {
				lines[idx] = newLine
				actions[d] = Filled
			} else {
				actions[d] = Skipped
			}
			continue
		}

		if len(lines) > 0 && !strings.HasSuffix(lines[len(lines)-1], "\n") {
			lines[len(lines)-1] += "\n"
		}
		lines = append(lines, newLine)
		actions[d] = Appended
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0644); err != nil {
		return nil, fmt.Errorf("write price history: %w", err)
	}
	return actions, nil
}

// isBlankRow reports whether the Open..Volume columns are all empty.
func isBlankRow(cols []string) bool {
	if len(cols) < 6 {
		return false
	}
	for _, c := range cols[1:6] {
		if c != "" {
			return false
		}
	}
	return true
}
