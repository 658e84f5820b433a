// main is the entry point for the solarsite CLI.
package main

import (
	"github.com/huangsam/solarsite/cmd"
	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		contract.LogFatal("solarsite", err)
	}
}
