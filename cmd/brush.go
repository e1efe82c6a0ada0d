package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// brushCmd replays a horizontal drag selection.
var brushCmd = &cobra.Command{
	Use:   "brush [series-file]",
	Short: "Select an x range by drag and count the points inside it.",
	Long: `Replay a drag from --from to --to and report the selected range.

The drag is clamped to the plot area. Drags narrower than --min-brush-width pixels
are treated as clicks and select nothing. Positions are domain values unless
--pixel is set.

Examples:
  # Select x between 5 and 15
  chartkit brush data/series.json --from 5 --to 15

  # Drag right to left in pixels
  chartkit brush data/series.json --pixel --from 320 --to 120`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBrush(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot apply brush", err)
		}
	},
}
