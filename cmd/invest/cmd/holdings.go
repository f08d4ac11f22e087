package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jaysean1/investment/config"
	"github.com/jaysean1/investment/holdings"
	"github.com/jaysean1/investment/ledger"
)

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Compute current positions from the transaction ledger",
	Long: `Recompute net quantity and weighted-average cost per symbol from the
full transaction log. Symbols with no remaining position are omitted.

The average cost is the cost of all historical buys divided by the total
bought quantity; sells reduce the quantity but not the average.`,
	RunE: runHoldings,
}

var holdingsCSV bool

func init() {
	rootCmd.AddCommand(holdingsCmd)

	holdingsCmd.Flags().BoolVar(&holdingsCSV, "csv", false, "emit the holdings-file CSV format instead of a table")
}

func runHoldings(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	positions, err := computePositions(cfg)
	if err != nil {
		return err
	}

	symbols := make([]string, 0, len(positions))
	for s := range positions {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	if holdingsCSV {
		fmt.Println("标的,当前持股数,买入加权平均成本(USD),持仓成本合计(USD),")
		for _, s := range symbols {
			p := positions[s]
			fmt.Printf("%s,%d,%s,%s,\n", p.Symbol, p.Quantity, p.AvgCost.StringFixed(4), p.TotalCost.StringFixed(2))
		}
		return nil
	}

	fmt.Printf("%-8s %10s %16s %16s\n", "symbol", "qty", "avg cost", "total cost")
	for _, s := range symbols {
		p := positions[s]
		fmt.Printf("%-8s %10d %16s %16s\n", p.Symbol, p.Quantity, p.AvgCost.StringFixed(4), p.TotalCost.StringFixed(2))
	}
	return nil
}

// computePositions reads the configured ledger backend and derives positions.
func computePositions(cfg *config.Config) (map[string]holdings.Position, error) {
	var (
		l   ledger.Ledger
		err error
	)
	if cfg.Ledger.Type == "csv" {
		l, err = ledger.NewCSV(cfg.Ledger.Path)
	} else {
		l, err = ledger.NewSQLite(cfg.Ledger.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer l.Close()

	records, err := l.List()
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return holdings.Compute(ledger.Transactions(records), holdings.AverageAll), nil
}
