package main

import (
	"os"

	"dirok/cmd/dirok/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
