package main

import (
	"os"

	"github.com/0xalexb/kvline/cmd/kvline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
