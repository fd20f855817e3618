package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/osu-song-extractor/internal/config"
	"github.com/handiism/osu-song-extractor/internal/extract"
)

func main() {
	// Command line flags
	var (
		inputFlag       = flag.String("input", "", "osu! Songs folder to scan (overrides config)")
		outputFlag      = flag.String("output", "", "Output directory (overrides config)")
		configFlag      = flag.String("config", "", "Path to config file")
		artistFirstFlag = flag.Bool("artist-first", false, "Name files \"Artist - Title\" instead of \"Title - Artist\"")
		noTagsFlag      = flag.Bool("no-tags", false, "Do not write ID3 tags")
		noArtFlag       = flag.Bool("no-art", false, "Do not embed beatmap backgrounds as cover art")
		playlistFlag    = flag.Bool("playlist", false, "Create a playlist of the extracted songs")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *inputFlag != "" {
		settings.SongsPath = *inputFlag
	}
	if flag.NArg() > 0 && *inputFlag == "" {
		settings.SongsPath = flag.Arg(0)
	}
	if *outputFlag != "" {
		settings.OutputPath = *outputFlag
	}
	if *artistFirstFlag {
		settings.NameFormat = "{artist} - {title}.mp3"
	}
	if *noTagsFlag {
		settings.ModifyTags = false
	}
	if *noArtFlag {
		settings.SaveCoverArtInTags = false
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create extractor with progress callback
	extractor := extract.NewExtractor(settings, func(event extract.ProgressEvent) {
		if event.Level == extract.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case extract.LevelError:
			prefix = "❌ "
		case extract.LevelWarning:
			prefix = "⚠️  "
		case extract.LevelSuccess:
			prefix = "✅ "
		case extract.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("🎵 osu! Song Extractor")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Input:  %s\n", settings.SongsPath)
	fmt.Printf("Output: %s\n", settings.OutputPath)
	fmt.Println()

	count, err := extractor.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Printf("\nExtraction cancelled after %d song(s).\n", count)
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during extraction: %v\n", err)
		os.Exit(1)
	}

	scanned, extracted := extractor.GetProgress()
	fmt.Println()
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("✨ Complete! Extracted %d song(s) from %d beatmap(s)\n", extracted, scanned)
}
