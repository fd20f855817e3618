// Package extract provides the traversal engine that turns an osu!
// Songs folder into a flat directory of tagged audio files.
//
// # Extractor
//
// The Extractor coordinates one extraction run:
//
//  1. Catalog scan: loose beatmap folders and .osz archives directly
//     under the Songs folder
//  2. Pack scan: .zip packs, each .osz entry materialized in memory
//     and processed as a nested unit
//  3. Per unit: analyze metadata, skip if the output already exists,
//     copy the audio bytes, validate/normalize the format, write ID3
//     tags with optional cover art
//  4. Optionally write a playlist of this run's songs
//
// # Basic Usage
//
//	extractor := extract.NewExtractor(settings, func(event extract.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	count, err := extractor.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("extracted %d songs\n", count)
//
// # Failure Policy
//
// Units that hold no song (non-beatmap folders, incomplete metadata,
// missing audio) and units that fail locally are skipped with a
// one-line diagnostic; the run never aborts because of a single unit.
// Only an unreadable Songs folder or an unwritable output folder is
// fatal. Repeated runs are incremental: existing output files are
// skipped, so the run counter only reflects fresh writes.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives
// ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress exposes scanned/extracted counters for polling UIs.
package extract
