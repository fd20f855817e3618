// Package ioutils provides file system utilities for osu-song-extractor.
//
// This package contains functions for:
//   - File writing
//   - Existence checks backing the skip-if-exists write gate
//   - Directory creation
//   - Image processing for cover art
package ioutils

import (
	"context"
	"os"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Parameters:
//   - ctx: Context for cancellation (currently unused but reserved for future use)
//   - path: File path to write to
//   - data: Bytes to write
//
// Example:
//
//	audioBytes, _ := src.ReadFile(song.AudioFilename)
//	err := WriteFile(ctx, "/music/osu/Foo - Bar.mp3", audioBytes)
func WriteFile(ctx context.Context, path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// FileExists reports whether path exists.
//
// The extractor's write gate uses this to skip songs that were already
// extracted in a previous run.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/music/osu")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
