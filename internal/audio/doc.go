// Package audio validates, normalizes and tags extracted audio files.
//
// # Validation
//
// Normalize checks that an extracted file is genuine MP3 audio with
// stream info. Beatmap archives often mislabel Ogg Vorbis audio with a
// .mp3 extension; Normalize detects the OggS signature and renames such
// files in place to .ogg.
//
//	res, err := audio.Normalize(path)
//	if res.Verdict == audio.VerdictRenamed {
//	    // res.Path now ends in .ogg; do not ID3-tag it
//	}
//
// # Tagging
//
// Tagger writes ID3v2 title/artist frames and optional cover art using
// the id3v2 library. Files with legacy ID3v2.2 tags are left untouched:
// the library cannot parse them, and the audio payload is still valid.
//
// # Playlists
//
// PlaylistCreator renders the songs extracted in one run as an M3U or
// PLS playlist for the output directory.
package audio
