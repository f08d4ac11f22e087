package main

import (
	"os"

	"github.com/jaysean1/investment/cmd/invest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
