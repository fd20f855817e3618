// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File writing and existence checks
//   - Directory creation
//   - Image resizing and format conversion
//
// # File Operations
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/file.mp3", audioBytes)
//
//	// Skip-if-exists write gate
//	if ioutils.FileExists(outputPath) { ... }
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/music/osu")
//
// # Image Processing
//
// The ImageService prepares beatmap backgrounds for cover-art embedding:
//
//	svc := ioutils.NewImageService()
//
//	// Resize image to fit within 1000x1000
//	resized, _ := svc.ResizeImage(ctx, imageData, 1000, 1000)
//
//	// Convert to JPEG
//	jpeg, _ := svc.ConvertToJPEG(ctx, pngData)
package ioutils
