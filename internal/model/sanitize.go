package model

import "regexp"

// invalidFileNameChars matches the characters Windows forbids in file
// names: < > : " / \ | ? *
var invalidFileNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// sanitizeFileName replaces characters that are invalid in file names
// with a dash.
//
// The substitute is not itself in the invalid set, so the function is
// idempotent: sanitizing an already-sanitized name is a no-op.
//
// Example:
//
//	sanitizeFileName("Song: Part 1/2") // Returns "Song- Part 1-2"
func sanitizeFileName(name string) string {
	return invalidFileNameChars.ReplaceAllString(name, "-")
}
