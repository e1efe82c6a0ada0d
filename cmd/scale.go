package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// scaleCmd fits the axes without building paths.
var scaleCmd = &cobra.Command{
	Use:   "scale [series-file]",
	Short: "Fit the x and y scales and list their ticks.",
	Long: `Fit both axes to the series data and print their domains, pixel ranges and ticks.

The y axis is padded by --padding-ratio and extended to round values with --nice.
The x axis is linear, or temporal when --x-axis temporal is set.

Examples:
  # Show the fitted scales with 10 ticks
  chartkit scale data/series.json --ticks 10

  # Export ticks to CSV
  chartkit scale data/series.json --output csv --output-file ticks.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScale(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot fit scales", err)
		}
	},
}
