// main is the entry point for the ladder CLI.
package main

import (
	"github.com/huangsam/ladder/cmd"
	"github.com/huangsam/ladder/internal/contract"
	"github.com/huangsam/ladder/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		contract.LogFatal("ladder", err)
	}
}
