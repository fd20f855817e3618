package main

import (
	"fmt"
	"os"

	"github.com/handiism/osu-song-extractor/internal/tui"
)

func main() {
	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
