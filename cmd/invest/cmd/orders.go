package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaysean1/investment/holdings"
	"github.com/jaysean1/investment/ladder"
	"github.com/jaysean1/investment/ledger"
	"github.com/jaysean1/investment/market"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Generate tiered limit-buy order recommendations",
	Long: `Classify each basket instrument's market phase from its price history
and print the recommended order ladder, one order-log line per symbol.

By default the latest close in the history file is used as the current price
and the closes before it feed the trend classification. A live quote can be
supplied per symbol instead:

  invest orders --quote MSFT=513.58 --quote QQQ=601.20

Symbols in an uptrend produce no orders (observation mode). A symbol whose
history cannot be read is reported and skipped; the rest of the basket still
runs.`,
	RunE: runOrders,
}

var (
	ordersDate   string
	ordersQuotes []string
)

func init() {
	rootCmd.AddCommand(ordersCmd)

	ordersCmd.Flags().StringVar(&ordersDate, "date", time.Now().Format("2006-01-02"), "trading date for the order-log lines")
	ordersCmd.Flags().StringArrayVar(&ordersQuotes, "quote", nil, "live quote override, SYMBOL=PRICE (repeatable)")
}

func runOrders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger()

	quotes, err := parseQuotes(ordersQuotes)
	if err != nil {
		return err
	}

	policy := cfg.LadderPolicy()
	failed := 0

	for _, inst := range cfg.Basket {
		candles, err := market.LoadHistory(inst.HistoryFile)
		if err != nil {
			log.Error().Err(err).Str("symbol", inst.Symbol).Msg("skipping symbol")
			failed++
			continue
		}

		closes := market.Closes(candles, 11)
		current, ok := quotes[inst.Symbol]
		recent := closes
		if !ok {
			if len(closes) == 0 {
				log.Error().Str("symbol", inst.Symbol).Msg("no price history, skipping symbol")
				failed++
				continue
			}
			current = closes[len(closes)-1]
			recent = closes[:len(closes)-1]
		} else if len(recent) > 10 {
			recent = recent[len(recent)-10:]
		}

		snap := market.Classify(recent, current)
		log.Debug().
			Str("symbol", inst.Symbol).
			Str("phase", string(snap.Phase)).
			Float64("sma5", snap.SMA5).
			Float64("sma10", snap.SMA10).
			Float64("volatility_pct", snap.VolatilityPct).
			Float64("current", current).
			Msg("classified")

		tiers := ladder.Generate(snap.Phase, current, ladder.Category(inst.Category), policy)
		if len(tiers) == 0 {
			log.Info().Str("symbol", inst.Symbol).Str("phase", string(snap.Phase)).Msg("no orders (observation mode)")
			continue
		}

		fmt.Println(ladder.FormatOrderLine(ordersDate, inst.Symbol, ledger.OpLabel(holdings.Buy), tiers))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d symbols failed", failed, len(cfg.Basket))
	}
	return nil
}

func parseQuotes(specs []string) (map[string]float64, error) {
	quotes := map[string]float64{}
	for _, spec := range specs {
		symbol, value, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, fmt.Errorf("bad quote %q, expected SYMBOL=PRICE", spec)
		}
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price <= 0 {
			return nil, fmt.Errorf("bad quote price %q for %s", value, symbol)
		}
		quotes[symbol] = price
	}
	return quotes, nil
}
