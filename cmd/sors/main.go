package main

import (
	"os"

	"github.com/jos-ren/Sors-Finance-sub002/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
