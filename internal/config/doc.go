// Package config manages persistent settings for osu-song-extractor.
//
// Settings are stored as JSON and cover four areas:
//   - Directories: the osu! Songs folder to scan and the output folder
//   - File naming: output name format and Unicode metadata preference
//   - Tags: whether to write ID3 tags and embed beatmap backgrounds
//   - Playlists: optional playlist generation for extracted songs
//
// # Basic Usage
//
//	settings, err := config.Load("/path/to/settings.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings.OutputPath = "/music/osu"
//	settings.Save("/path/to/settings.json")
//
// Load returns DefaultSettings() when the file does not exist, so a
// settings file is never required.
package config
