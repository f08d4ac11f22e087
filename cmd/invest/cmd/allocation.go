package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaysean1/investment/risk"
)

var allocationCmd = &cobra.Command{
	Use:   "allocation",
	Short: "Show the risk/safe layer split of total capital",
	RunE:  runAllocation,
}

func init() {
	rootCmd.AddCommand(allocationCmd)
}

func runAllocation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	positions, err := computePositions(cfg)
	if err != nil {
		return err
	}

	a, err := risk.ComputeAllocation(positions, cfg.Risk.TotalCapital, cfg.RiskPolicy())
	if err != nil {
		return fmt.Errorf("compute allocation: %w", err)
	}

	fmt.Printf("Total invested: $%s of $%.2f\n", a.TotalInvested.StringFixed(2), a.TotalCapital)
	fmt.Printf("Risk layer:     %s%% (target %.0f-%.0f%%) %s\n",
		a.RiskLayerPct.StringFixed(2), cfg.Risk.TargetMinPct, cfg.Risk.TargetMaxPct, a.Mark)
	fmt.Printf("Safe layer:     %s%%\n", a.SafeLayerPct.StringFixed(2))
	return nil
}
