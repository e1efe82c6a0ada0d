package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// renderCmd computes the full chart geometry.
var renderCmd = &cobra.Command{
	Use:   "render [series-file]",
	Short: "Compute axes, SVG paths, bands and a summary for a chart.",
	Long: `Fit scales to the series data and compute everything a renderer needs.

Produces:
- X and Y axes with domains, pixel ranges and tick positions
- One SVG path per series using the selected curve
- Category bands laid out along the x axis (with --samples)
- A screen-reader summary of the chart

Results are cached by input content and layout, so repeated renders of the same
data are served from the cache backend.

Examples:
  # Render a JSON series file with monotone curves
  chartkit render data/series.json --curve monotone

  # Animate the first half of each path
  chartkit render data/series.json --reveal 0.5

  # Time series with category bands, exported for a renderer
  chartkit render data/cpu.csv --x-axis temporal --samples data/state.csv --output json --output-file chart.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRender(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot render chart", err)
		}
	},
}
