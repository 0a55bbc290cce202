// main is the entry point for the pulseboard CLI.
package main

import (
	"github.com/huangsam/pulseboard/cmd"
	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogFatal("Failed to stop profiling", profErr)
	}
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
