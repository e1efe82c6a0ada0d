package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// navigateCmd replays keyboard focus movement.
var navigateCmd = &cobra.Command{
	Use:   "navigate [series-file]",
	Short: "Replay keyboard keys through point focus and narrate each step.",
	Long: `Move keyboard focus between data points and print what a screen reader would say.

Focus starts on nothing; the first movement key focuses the first point.
Left and right move within a series, up and down switch series, Home and End
jump to the ends, Enter or space select and Escape clears.
Run 'chartkit keys' for the full key map.

Examples:
  # Walk the first series and select its last point
  chartkit navigate data/series.json --keys "ArrowRight,End,Enter"

  # Wrap around at the ends of a series
  chartkit navigate data/series.json --keys "Home,left" --wrap wrap`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteNavigate(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot replay navigation", err)
		}
	},
}
