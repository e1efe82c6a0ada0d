package cmd

import (
	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/spf13/cobra"
)

// keysCmd displays the keyboard navigation key map.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Display the keyboard navigation key map",
	Long: `Show every navigation action and the key names that trigger it.

Browser key names (ArrowRight, Enter, Escape) and short aliases (right, esc) are
both accepted by 'chartkit navigate', as are the action names themselves.

No input is read - this is purely informational.

Examples:
  # Show the key map
  chartkit keys

  # Key map as JSON
  chartkit keys --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteKeys(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display key map", err)
		}
	},
}
