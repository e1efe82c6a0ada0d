package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// bandsCmd compresses category samples into bands.
var bandsCmd = &cobra.Command{
	Use:   "bands [series-file]",
	Short: "Merge consecutive category samples into bands.",
	Long: `Compress a run of category samples into bands and lay them out on the x axis.

Consecutive samples with the same category become one band spanning their first
and last x. A series file is optional and only widens the x domain.

Examples:
  # Bands from a samples file
  chartkit bands --samples data/state.json

  # Bands laid out against a series' time axis
  chartkit bands data/cpu.csv --samples data/state.csv --x-axis temporal

  # Export bands for analytics
  chartkit bands --samples data/state.json --output parquet --output-file bands.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBands(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot compress bands", err)
		}
	},
}
