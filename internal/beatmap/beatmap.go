package beatmap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// File extensions recognized by the extractor.
const (
	// DescriptionExt is the extension of beatmap description files.
	DescriptionExt = ".osu"

	// ArchiveExt is the extension of single-map archives. An .osz file
	// is a zip container holding one beatmap's assets.
	ArchiveExt = ".osz"

	// PackExt is the extension of beatmap packs: zip containers holding
	// many single-map archives.
	PackExt = ".zip"
)

// ErrSectionNotFound is returned by GetSection when the description
// file has no section with the requested name.
var ErrSectionNotFound = errors.New("section not found")

// GetSection reads one bracketed section of a beatmap description file
// and returns its key/value pairs.
//
// Description files are line-oriented: a `[Section]` header is followed
// by `Key: Value` lines until the next header. Values are split on the
// first colon and trimmed. Blank lines and // comments are skipped.
//
// Example:
//
//	general, err := beatmap.GetSection(data, "General")
//	if err != nil {
//	    // no [General] section in this file
//	}
//	audio := general["AudioFilename"]
func GetSection(data []byte, section string) (map[string]string, error) {
	marker := "[" + section + "]"
	scanner := bufio.NewScanner(bytes.NewReader(data))

	inSection := false
	pairs := make(map[string]string)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if inSection {
				break
			}
			inSection = strings.HasPrefix(line, marker)
			continue
		}

		if !inSection {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !inSection && len(pairs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSectionNotFound, section)
	}

	return pairs, nil
}
