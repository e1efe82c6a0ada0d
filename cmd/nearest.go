package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// nearestCmd resolves a pointer position to a data point.
var nearestCmd = &cobra.Command{
	Use:   "nearest [series-file]",
	Short: "Find the data point nearest to a pointer.",
	Long: `Hit-test a pointer against the chart and narrate the point it lands on.

Each series contributes the point nearest in x; the series whose point is closest
to the pointer in y pixels wins. Positions are domain values unless --pixel is set.

Examples:
  # Pointer at x=10, y=4 in data units
  chartkit nearest data/series.json --x 10 --y 4

  # Pointer at a pixel position
  chartkit nearest data/series.json --pixel --x 220 --y 40`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteNearest(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot find nearest point", err)
		}
	},
}
