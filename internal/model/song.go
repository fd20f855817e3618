package model

import "strings"

// Song describes one extractable audio track found inside a beatmap.
//
// Song contains everything the extraction pipeline needs downstream:
//   - AudioFilename, the audio entry referenced by the beatmap, relative
//     to the beatmap folder or archive root
//   - Background, the beatmap's background image entry (may be empty)
//   - Title and Artist for ID3 tagging
//   - OutputName, the sanitized filename for the extracted copy
//
// OutputName is computed once by NewSong; a Song is immutable after
// construction and only lives for a single extraction call.
//
// Example:
//
//	cfg := &SongConfig{NameFormat: "{title} - {artist}.mp3", PreferUnicode: true}
//	song := NewSong(Metadata{Title: "Foo", Artist: "Bar"}, "audio.mp3", "bg.jpg", cfg)
//	// song.OutputName = "Foo - Bar.mp3"
type Song struct {
	// AudioFilename is the name of the audio file inside the beatmap.
	AudioFilename string

	// Background is the name of the background image inside the
	// beatmap. Empty string means no background is available.
	Background string

	// Title is the display title, after Unicode preference is applied.
	Title string

	// Artist is the display artist, after Unicode preference is applied.
	Artist string

	// OutputName is the computed output filename, extension included.
	OutputName string
}

// Metadata carries the raw metadata fields read from a beatmap's
// [Metadata] section. Unicode variants are optional and may be empty.
type Metadata struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
}

// SongConfig holds output naming settings.
//
// NameFormat supports placeholders that are replaced with actual values:
//   - {title} - Song title
//   - {artist} - Song artist
//
// The format must include the file extension (typically ".mp3").
//
// Example:
//
//	cfg := &SongConfig{NameFormat: "{artist} - {title}.mp3"}
//	// Results in filenames like "The Beatles - Come Together.mp3"
type SongConfig struct {
	// NameFormat is the template for output filenames.
	NameFormat string

	// PreferUnicode selects the Unicode metadata variants when they are
	// present and non-empty.
	PreferUnicode bool
}

// NewSong creates a Song from beatmap metadata with a computed output name.
//
// When cfg.PreferUnicode is set, TitleUnicode and ArtistUnicode take
// precedence over Title and Artist; an empty Unicode field always falls
// back to the plain one. Invalid filename characters in the output name
// are replaced with dashes.
func NewSong(meta Metadata, audioFilename, background string, cfg *SongConfig) *Song {
	title := meta.Title
	artist := meta.Artist
	if cfg.PreferUnicode {
		title = fallback(meta.TitleUnicode, meta.Title)
		artist = fallback(meta.ArtistUnicode, meta.Artist)
	}

	song := &Song{
		AudioFilename: audioFilename,
		Background:    background,
		Title:         title,
		Artist:        artist,
	}

	song.OutputName = song.parseOutputName(cfg)

	return song
}

// fallback returns preferred unless it is empty.
func fallback(preferred, plain string) string {
	if preferred != "" {
		return preferred
	}
	return plain
}

// parseOutputName computes the output filename from the config template.
func (s *Song) parseOutputName(cfg *SongConfig) string {
	name := cfg.NameFormat
	name = strings.ReplaceAll(name, "{title}", s.Title)
	name = strings.ReplaceAll(name, "{artist}", s.Artist)
	return sanitizeFileName(name)
}
