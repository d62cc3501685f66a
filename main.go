package main

import (
	"os"

	"github.com/dragonfruitnetwork/codecutter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
