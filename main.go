package main

import (
	"os"

	"github.com/kwabena/prepdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
