package main

import (
	"os"

	"github.com/ChaseCares/pill-doser/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
