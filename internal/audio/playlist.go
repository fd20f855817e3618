package audio

import (
	"fmt"
	"strings"
)

// PlaylistFormat represents supported playlist file formats.
//
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// Extension returns the file extension for the playlist format,
// including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	default:
		return ".m3u"
	}
}

// PlaylistEntry is one extracted song referenced from a playlist.
type PlaylistEntry struct {
	// FileName is the song's filename relative to the output directory.
	FileName string

	// Title is the song title.
	Title string

	// Artist is the song artist.
	Artist string
}

// PlaylistCreator generates playlist files for the songs extracted in
// one run.
//
// Entry paths in the playlist are relative (just the filename),
// assuming the playlist file lives in the output directory alongside
// the songs.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(entries)
//	os.WriteFile(filepath.Join(outputDir, "osu! songs.m3u"), []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// Song Title - Artist.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with artist/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// extended controls #EXTINF lines for the M3U format and is ignored
// for other formats.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for the given entries,
// ready to be written to a file.
func (p *PlaylistCreator) CreatePlaylist(entries []PlaylistEntry) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(entries)
	default:
		return p.createM3U(entries)
	}
}

// createM3U generates an M3U playlist.
//
// Standard M3U format:
//
//	filename1.mp3
//	filename2.mp3
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	filename1.mp3
//
// Track durations are not known to the extractor, so EXTINF lines use
// -1 per the extended M3U convention.
func (p *PlaylistCreator) createM3U(entries []PlaylistEntry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, entry := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s - %s\n", entry.Artist, entry.Title))
		}
		sb.WriteString(entry.FileName + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=filename1.mp3
//	Title1=Song Title
//	NumberOfEntries=2
//	Version=2
func (p *PlaylistCreator) createPLS(entries []PlaylistEntry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, entry := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, entry.FileName))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, entry.Title))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}
