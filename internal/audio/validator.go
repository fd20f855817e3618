package audio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// Verdict classifies the outcome of validating an extracted audio file.
type Verdict int

const (
	// VerdictOK means the file is a genuine MP3 with stream info.
	VerdictOK Verdict = iota

	// VerdictRenamed means the file was actually an Ogg container and
	// has been renamed in place to the .ogg extension.
	VerdictRenamed

	// VerdictInvalid means the file is neither a valid MP3 nor a
	// recognized alternate container. The file is left untouched.
	VerdictInvalid
)

// Result describes what Normalize decided about a file.
type Result struct {
	// Verdict is the validation outcome.
	Verdict Verdict

	// Path is the file's location after normalization. It differs from
	// the input path only when the file was renamed.
	Path string

	// Detected names the container type identified for invalid files,
	// when one could be identified. Empty otherwise.
	Detected string
}

// oggSignature is the magic number of an Ogg container page.
var oggSignature = []byte("OggS")

// OggExt is the extension mislabeled Ogg audio is corrected to.
const OggExt = ".ogg"

// Normalize checks that a just-extracted file really is MP3 audio and
// corrects its extension when it is not.
//
// A file counts as valid only when it parses as MP3 and carries stream
// info (a sample rate and a decodable length); a container without an
// audio stream is invalid. Beatmap archives frequently ship Ogg Vorbis
// audio under a .mp3 name, so an invalid file starting with the OggS
// signature is renamed in place to .ogg and reported as corrected.
// Anything else is left where it is with VerdictInvalid.
func Normalize(path string) (*Result, error) {
	header, valid, err := inspect(path)
	if err != nil {
		return nil, err
	}

	if valid {
		return &Result{Verdict: VerdictOK, Path: path}, nil
	}

	if bytes.HasPrefix(header, oggSignature) {
		renamed := strings.TrimSuffix(path, filepath.Ext(path)) + OggExt
		if err := os.Rename(path, renamed); err != nil {
			return nil, err
		}
		return &Result{Verdict: VerdictRenamed, Path: renamed}, nil
	}

	return &Result{
		Verdict:  VerdictInvalid,
		Path:     path,
		Detected: detectContainer(path),
	}, nil
}

// inspect returns the file's leading bytes and whether it decodes as an
// MP3 stream.
func inspect(path string) (header []byte, valid bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	header = make([]byte, len(oggSignature))
	n, err := io.ReadFull(f, header)
	if err != nil {
		// Shorter than a magic number: definitely not audio.
		return header[:n], false, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return header, false, err
	}

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return header, false, nil
	}

	return header, dec.SampleRate() > 0 && dec.Length() > 0, nil
}

// detectContainer asks the metadata reader what the file actually is.
// Best effort: an unrecognized container yields an empty string.
func detectContainer(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}
	return string(m.FileType())
}
