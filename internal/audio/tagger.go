package audio

import (
	"errors"

	"github.com/bogem/id3v2"
)

// TagEditAction defines how to handle individual ID3 tags.
//
// Each tag field can be configured independently to determine whether
// it should be modified, cleared, or left unchanged.
type TagEditAction int

const (
	// TagEmpty clears the tag value (sets to empty string).
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value from the beatmap.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags: true,
//	    Artist:     TagModify,      // Update artist from the beatmap
//	    Title:      TagModify,      // Update title from the beatmap
//	    Comments:   TagEmpty,       // Clear any existing comments
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// Artist controls the TPE1 (Lead artist) frame.
	Artist TagEditAction

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Comments controls the COMM (Comments) frame.
	Comments TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// Title and artist are updated from beatmap metadata; comments are
// cleared, since beatmap audio often carries leftover encoder notes.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Artist:     TagModify,
		Title:      TagModify,
		Comments:   TagEmpty,
	}
}

// Tagger writes ID3 tags to extracted MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//
//	// After extracting a song
//	err := tagger.SaveTags(path, song.Title, song.Artist, artworkBytes)
//	if err != nil {
//	    log.Printf("Failed to tag %s: %v", path, err)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// SaveTags writes ID3 tags to the file at path.
//
// If the file has no existing tag container, an empty one is
// initialized. Artwork bytes, when provided, are embedded as the front
// cover (APIC frame).
//
// Files carrying a legacy ID3v2.2 tag cannot be parsed by the tag
// library; that specific failure is swallowed silently and the file is
// left as extracted, since the audio payload itself remains valid. All
// other failures are returned to the caller.
func (t *Tagger) SaveTags(path, title, artist string, artwork []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		if errors.Is(err, id3v2.ErrUnsupportedVersion) {
			return nil
		}
		return err
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, title, artist)
	}

	if artwork != nil {
		t.updateArtwork(tag, artwork)
	}

	return tag.Save()
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, title, artist string) {
	// Artist (TPE1)
	switch t.config.Artist {
	case TagEmpty:
		tag.SetArtist("")
	case TagModify:
		tag.SetArtist(artist)
	}

	// Title (TIT2)
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		tag.SetTitle(title)
	}

	// Comments (COMM)
	if t.config.Comments == TagEmpty {
		tag.DeleteFrames(tag.CommonID("Comments"))
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, artwork []byte) {
	// Remove any existing cover pictures
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	// Add new artwork as front cover (APIC frame)
	pic := id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     artwork,
	}
	tag.AddAttachedPicture(pic)
}
