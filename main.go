// main is the entry point for the chartkit CLI.
package main

import (
	"github.com/huangsam/chartkit/cmd"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	iocache.CloseCaching()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
