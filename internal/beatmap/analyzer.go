package beatmap

import (
	"bufio"
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/handiism/osu-song-extractor/internal/model"
)

// ErrNoSong means a traversal unit holds no extractable song.
//
// This is the normal outcome for folders that are not beatmaps,
// beatmaps whose referenced audio file is missing, and description
// files with incomplete metadata. Callers skip the unit and continue.
var ErrNoSong = errors.New("no song found")

// backgroundEvent matches background image lines in the [Events]
// section, e.g. `0,0,"bg.jpg",0,0`.
var backgroundEvent = regexp.MustCompile(`^0,0,"(.+?)"`)

// Analyze inspects one traversal unit and produces a Song descriptor.
//
// Steps:
//  1. Find the first child named *.osu; none means the unit is not a
//     beatmap.
//  2. Read [General] AudioFilename and verify the audio file exists as
//     a sibling.
//  3. Read [Metadata] Title/Artist plus optional Unicode variants.
//  4. Pick up the [Events] background image if one exists.
//
// Every malformed or incomplete unit yields ErrNoSong rather than a
// hard error: a single bad beatmap must never halt a batch.
func Analyze(src Source, cfg *model.SongConfig) (*model.Song, error) {
	names, err := src.List()
	if err != nil {
		return nil, err
	}

	var descName string
	for _, name := range names {
		if strings.HasSuffix(strings.ToLower(name), DescriptionExt) {
			descName = name
			break
		}
	}
	if descName == "" {
		return nil, ErrNoSong
	}

	data, err := src.ReadFile(descName)
	if err != nil {
		return nil, err
	}

	general, err := GetSection(data, "General")
	if err != nil {
		return nil, ErrNoSong
	}

	audioFilename := general["AudioFilename"]
	if audioFilename == "" || !src.Exists(audioFilename) {
		return nil, ErrNoSong
	}

	metadata, err := GetSection(data, "Metadata")
	if err != nil {
		return nil, ErrNoSong
	}

	meta := model.Metadata{
		Title:         metadata["Title"],
		TitleUnicode:  metadata["TitleUnicode"],
		Artist:        metadata["Artist"],
		ArtistUnicode: metadata["ArtistUnicode"],
	}
	if meta.Title == "" || meta.Artist == "" {
		return nil, ErrNoSong
	}

	background := findBackground(data)
	if background != "" && !src.Exists(background) {
		background = ""
	}

	return model.NewSong(meta, audioFilename, background, cfg), nil
}

// findBackground scans the [Events] section for the background image
// entry. Returns an empty string when the beatmap has none.
func findBackground(data []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	inEvents := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if inEvents {
				break
			}
			inEvents = line == "[Events]"
			continue
		}

		if !inEvents {
			continue
		}

		if m := backgroundEvent.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}

	return ""
}
