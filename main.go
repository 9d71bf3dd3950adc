package main

import (
	"os"

	"github.com/rtzll/tubescribe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
