// Package beatmap reads osu! beatmaps from their three on-disk shapes.
//
// # Sources
//
// A beatmap arrives as a loose folder, a single-map .osz archive, or an
// .osz entry inside a .zip pack. All three are presented to the
// analyzer through the Source interface, which exposes the minimal
// capability set the pipeline needs: list children, read a child's
// bytes, test a child's existence.
//
//	src := beatmap.NewDirSource("/osu/Songs/123 Artist - Title")
//	song, err := beatmap.Analyze(src, cfg)
//	if errors.Is(err, beatmap.ErrNoSong) {
//	    // not a beatmap, or incomplete; skip it
//	}
//
// # Description files
//
// The .osu description format is line-oriented text with bracketed
// section headers followed by `Key: Value` lines. GetSection extracts
// one section's pairs; Analyze combines [General], [Metadata] and
// [Events] into a model.Song.
package beatmap
