package main

import (
	"os"

	"polybot/cmd/polybot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
