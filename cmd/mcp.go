package cmd

import (
	"github.com/huangsam/chartkit/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Chartkit MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents compute chart geometry,
hit tests, brush ranges, keyboard focus and descriptions via standard tools.

Series are passed inline as JSON. Flags and .chartkit.yaml set the default layout
that each tool call can override.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
