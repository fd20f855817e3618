// Package model contains the core data structures for osu-song-extractor.
//
// The central type is Song, which describes one extractable audio track
// found inside a beatmap: where its audio bytes live, the title/artist
// metadata to tag it with, and the sanitized output filename.
//
// Songs are created via NewSong, which applies the Unicode metadata
// fallback rule and computes the output name from a placeholder format:
//
//	cfg := &model.SongConfig{
//	    NameFormat:    "{title} - {artist}.mp3",
//	    PreferUnicode: true,
//	}
//	song := model.NewSong(meta, "audio.mp3", "bg.jpg", cfg)
package model
