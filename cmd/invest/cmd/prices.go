package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jaysean1/investment/pricefeed"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Update and validate local price history",
}

var pricesUpdateCmd = &cobra.Command{
	Use:   "update <date> [date...]",
	Short: "Fill or append daily rows in the price-history CSVs",
	Long: `Fetch recent daily candles from the price feed and bring each basket
instrument's history file up to date for the given dates (YYYY-MM-DD).

Blank placeholder rows are filled and missing dates appended; rows that
already hold valid prices are never overwritten.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPricesUpdate,
}

var pricesValidateCmd = &cobra.Command{
	Use:   "validate <symbol> <date> <price>",
	Short: "Validate a close against the price feed",
	Args:  cobra.ExactArgs(3),
	RunE:  runPricesValidate,
}

func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.AddCommand(pricesUpdateCmd)
	pricesCmd.AddCommand(pricesValidateCmd)
}

func runPricesUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger()
	client := pricefeed.NewClient(log)
	ctx := context.Background()

	failed := 0
	for _, inst := range cfg.Basket {
		history, err := client.DailyHistory(ctx, inst.Symbol)
		if err != nil {
			log.Error().Err(err).Str("symbol", inst.Symbol).Msg("fetch failed, skipping symbol")
			failed++
			continue
		}

		actions, err := pricefeed.UpdateCSV(inst.HistoryFile, history, args)
		if err != nil {
			log.Error().Err(err).Str("symbol", inst.Symbol).Msg("update failed, skipping symbol")
			failed++
			continue
		}

		for date, action := range actions {
			fmt.Printf("%s %s: %s\n", inst.Symbol, date, action)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d symbols failed", failed, len(cfg.Basket))
	}
	return nil
}

func runPricesValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	symbol, date := args[0], args[1]
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil || price <= 0 {
		return fmt.Errorf("bad price %q", args[2])
	}

	client := pricefeed.NewClient(newLogger())
	v, err := client.ValidateClose(context.Background(), symbol, date, price, cfg.Prices.TolerancePct)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s close %.2f vs feed %.2f (diff %.2f%%, tolerance %.2f%%) %s\n",
		symbol, date, price, v.RefClose, v.DiffPct, cfg.Prices.TolerancePct, v.Mark)
	return nil
}
