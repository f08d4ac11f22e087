package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jaysean1/investment/risk"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Validate positions against risk-layer limits",
	Long: `Check each held symbol's share of the risk-layer capital against its
configured cap. Sitting exactly on the cap is within limit.`,
	RunE: runLimits,
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}

func runLimits(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	positions, err := computePositions(cfg)
	if err != nil {
		return err
	}

	statuses, err := risk.ValidateLimits(positions, cfg.Risk.RiskLayerTotal, cfg.RiskPolicy())
	if err != nil {
		return fmt.Errorf("validate limits: %w", err)
	}

	symbols := make([]string, 0, len(statuses))
	for s := range statuses {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	for _, s := range symbols {
		st := statuses[s]
		fmt.Printf("%-8s %6s%% / %5.2f%% %s\n", st.Symbol, st.CurrentPct.StringFixed(2), st.LimitPct, st.Mark)
	}
	return nil
}
