package main

import (
	"fmt"
	"os"

	"github.com/tatianab/math-battles/internal/config"
	"github.com/tatianab/math-battles/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := tui.StartWith(cfg); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
