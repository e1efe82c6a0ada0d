package cmd

import (
	"runtime"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
	"github.com/spf13/cobra"
)

// versionCmd shows the build details and the curve kinds compiled into this binary.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chartkit version and build details.",
	Long: `Display the release version, commit, build date and Go runtime,
followed by the curve kinds and default cache location of this build.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("chartkit %s (commit %s, built %s, %s %s/%s)\n",
			version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		cmd.Printf("  Curves: %v\n", schema.AllCurveKinds)
		cmd.Printf("  Cache:  %s\n", contract.GetCacheDBFilePath())
	},
}
