package cmd

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jaysean1/investment/config"
)

var rootCmd = &cobra.Command{
	Use:   "invest",
	Short: "Daily decision support for a layered-order investing workflow",
	Long: `Invest is a batch decision-support tool for a small fixed basket of
instruments.

It provides commands for:
  - Classifying each instrument's market phase from recent closes
  - Generating tiered limit-buy order recommendations
  - Computing holdings and weighted-average cost from the transaction ledger
  - Validating positions against risk-layer limits
  - Checking the risk/safe capital allocation
  - Updating and validating local price history against the price feed`,
}

var (
	cfgPath  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "f", "invest.yaml", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}

func newLogger() zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(lvl)
}

func loadConfig() (*config.Config, error) {
	return config.LoadFromFile(cfgPath)
}
