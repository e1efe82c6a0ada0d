package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// describeCmd prints the screen-reader description.
var describeCmd = &cobra.Command{
	Use:   "describe [series-file]",
	Short: "Compose a screen-reader description of a chart.",
	Long: `Describe the chart in plain sentences: series count, per-series extents,
derived statistics and category bands.

Statistics come from the series file and from the 'stats' list in .chartkit.yaml.

Examples:
  # Describe a chart
  chartkit describe data/series.json

  # Include bands in the description
  chartkit describe data/series.json --samples data/state.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDescribe(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot describe chart", err)
		}
	},
}
