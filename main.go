package main

import (
	"os"

	"github.com/dycw/skritter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
