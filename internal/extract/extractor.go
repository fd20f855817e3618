package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/handiism/osu-song-extractor/internal/audio"
	"github.com/handiism/osu-song-extractor/internal/beatmap"
	"github.com/handiism/osu-song-extractor/internal/config"
	ioutils "github.com/handiism/osu-song-extractor/internal/io"
	"github.com/handiism/osu-song-extractor/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents an extraction progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Extractor coordinates a single extraction run over the Songs folder.
type Extractor struct {
	settings     *config.Settings
	songConfig   *model.SongConfig
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	playlistFormat audio.PlaylistFormat
	entries        []audio.PlaylistEntry

	scannedUnits   int32
	extractedSongs int32

	onProgress func(ProgressEvent)
}

// NewExtractor creates a new Extractor.
func NewExtractor(settings *config.Settings, onProgress func(ProgressEvent)) *Extractor {
	var playlistFormat audio.PlaylistFormat
	switch settings.PlaylistFormat {
	case "pls":
		playlistFormat = audio.FormatPLS
	default:
		playlistFormat = audio.FormatM3U
	}

	tagConfig := audio.DefaultTagConfig()
	tagConfig.ModifyTags = settings.ModifyTags

	return &Extractor{
		settings:       settings,
		songConfig:     settings.ToSongConfig(),
		tagger:         audio.NewTagger(tagConfig),
		playlist:       audio.NewPlaylistCreator(playlistFormat, settings.M3UExtended),
		imageService:   ioutils.NewImageService(),
		playlistFormat: playlistFormat,
		onProgress:     onProgress,
	}
}

// Run scans the Songs folder and extracts every song it finds.
//
// The run has two phases. The catalog scan handles each immediate child
// of the Songs folder that is a loose beatmap folder or a single-map
// .osz archive. The pack scan then opens each .zip pack, materializes
// its .osz entries in memory one at a time and feeds them through the
// same pipeline. Output is idempotent regardless of phase order since
// writes are skip-if-exists.
//
// A unit that holds no song or fails locally is skipped with a
// diagnostic; only an unreadable Songs folder or an unwritable output
// folder aborts the run. Run returns the number of songs extracted,
// which is always reported even when every unit was skipped.
func (e *Extractor) Run(ctx context.Context) (int, error) {
	info, err := os.Stat(e.settings.SongsPath)
	if err != nil {
		return 0, fmt.Errorf("songs folder: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("songs folder %s is not a directory", e.settings.SongsPath)
	}
	if err := ioutils.EnsureDir(e.settings.OutputPath); err != nil {
		return 0, fmt.Errorf("output folder: %w", err)
	}

	children, err := os.ReadDir(e.settings.SongsPath)
	if err != nil {
		return 0, fmt.Errorf("songs folder: %w", err)
	}

	// Catalog scan: loose folders and single-map archives.
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return e.count(), err
		}

		path := filepath.Join(e.settings.SongsPath, child.Name())
		switch {
		case child.IsDir():
			e.processUnit(ctx, beatmap.NewDirSource(path))
		case strings.EqualFold(filepath.Ext(child.Name()), beatmap.ArchiveExt):
			src, err := beatmap.OpenZipSource(path)
			if err != nil {
				e.progress(ProgressEvent{Message: fmt.Sprintf("Error opening %s: %v", path, err), Level: LevelWarning})
				continue
			}
			e.processUnit(ctx, src)
			src.Close()
		}
	}

	// Pack scan: runs only after the catalog scan completes in full.
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return e.count(), err
		}
		if child.IsDir() || !strings.EqualFold(filepath.Ext(child.Name()), beatmap.PackExt) {
			continue
		}
		e.processPack(ctx, filepath.Join(e.settings.SongsPath, child.Name()))
	}

	if e.settings.CreatePlaylist {
		e.writePlaylist(ctx)
	}

	count := e.count()
	e.progress(ProgressEvent{Message: fmt.Sprintf("Extracted %d song(s)", count), Level: LevelSuccess})
	return count, nil
}

// GetProgress returns current extraction progress.
func (e *Extractor) GetProgress() (scanned, extracted int32) {
	return atomic.LoadInt32(&e.scannedUnits), atomic.LoadInt32(&e.extractedSongs)
}

func (e *Extractor) count() int {
	return int(atomic.LoadInt32(&e.extractedSongs))
}

// processPack opens a pack archive and feeds each single-map entry
// through the pipeline. Entries are decompressed into memory one at a
// time and released before moving on, so peak memory is bounded by one
// archive, not the whole pack.
func (e *Extractor) processPack(ctx context.Context, path string) {
	e.progress(ProgressEvent{Message: "Scanning pack: " + path, Level: LevelInfo})

	pack, err := beatmap.OpenZipSource(path)
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error opening pack %s: %v", path, err), Level: LevelWarning})
		return
	}
	defer pack.Close()

	names, err := pack.List()
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error listing pack %s: %v", path, err), Level: LevelWarning})
		return
	}

	for _, name := range names {
		if ctx.Err() != nil {
			return
		}
		if !strings.EqualFold(filepath.Ext(name), beatmap.ArchiveExt) {
			continue
		}

		data, err := pack.ReadFile(name)
		if err != nil {
			e.progress(ProgressEvent{Message: fmt.Sprintf("Error extracting %s from %s: %v", name, path, err), Level: LevelWarning})
			continue
		}

		inner, err := beatmap.NewZipSourceFromBytes(path+":"+name, data)
		if err != nil {
			e.progress(ProgressEvent{Message: fmt.Sprintf("Error opening %s from %s: %v", name, path, err), Level: LevelWarning})
			continue
		}

		e.processUnit(ctx, inner)
	}
}

// processUnit runs one traversal unit through the analyze → write gate
// → copy → normalize → tag pipeline.
func (e *Extractor) processUnit(ctx context.Context, src beatmap.Source) {
	atomic.AddInt32(&e.scannedUnits, 1)
	e.progress(ProgressEvent{Message: "Scanning " + src.Name(), Level: LevelVerbose})

	song, err := beatmap.Analyze(src, e.songConfig)
	if errors.Is(err, beatmap.ErrNoSong) {
		e.progress(ProgressEvent{Message: fmt.Sprintf("No song found in %s, skipped", src.Name()), Level: LevelVerbose})
		return
	}
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error analyzing %s: %v", src.Name(), err), Level: LevelWarning})
		return
	}

	outPath := filepath.Join(e.settings.OutputPath, song.OutputName)
	if ioutils.FileExists(outPath) {
		e.progress(ProgressEvent{Message: fmt.Sprintf("%s already exists, skipped", song.OutputName), Level: LevelVerbose})
		return
	}

	data, err := src.ReadFile(song.AudioFilename)
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error reading %s from %s: %v", song.AudioFilename, src.Name(), err), Level: LevelWarning})
		return
	}
	if err := ioutils.WriteFile(ctx, outPath, data); err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error writing %s: %v", outPath, err), Level: LevelError})
		return
	}
	atomic.AddInt32(&e.extractedSongs, 1)

	res, err := audio.Normalize(outPath)
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error validating %s: %v", song.OutputName, err), Level: LevelWarning})
		return
	}

	fileName := song.OutputName
	switch res.Verdict {
	case audio.VerdictRenamed:
		fileName = filepath.Base(res.Path)
		e.progress(ProgressEvent{Message: fmt.Sprintf("%s was Ogg audio, renamed to %s", song.OutputName, fileName), Level: LevelInfo})
	case audio.VerdictInvalid:
		if res.Detected != "" {
			e.progress(ProgressEvent{Message: fmt.Sprintf("%s is not valid MP3 audio (looks like %s)", song.OutputName, res.Detected), Level: LevelWarning})
		} else {
			e.progress(ProgressEvent{Message: fmt.Sprintf("%s is not valid MP3 audio", song.OutputName), Level: LevelWarning})
		}
	}

	// Renamed .ogg output holds no ID3 container; everything else is tagged.
	if res.Verdict != audio.VerdictRenamed && (e.settings.ModifyTags || e.settings.SaveCoverArtInTags) {
		artwork := e.loadArtwork(ctx, src, song)
		if err := e.tagger.SaveTags(res.Path, song.Title, song.Artist, artwork); err != nil {
			e.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", fileName, err), Level: LevelWarning})
		}
	}

	e.entries = append(e.entries, audio.PlaylistEntry{FileName: fileName, Title: song.Title, Artist: song.Artist})
	e.progress(ProgressEvent{Message: "Extracted: " + fileName, Level: LevelSuccess})
}

// loadArtwork prepares the beatmap background for cover-art embedding.
// Best effort: any failure just means no artwork.
func (e *Extractor) loadArtwork(ctx context.Context, src beatmap.Source, song *model.Song) []byte {
	if !e.settings.SaveCoverArtInTags || song.Background == "" {
		return nil
	}

	artwork, err := src.ReadFile(song.Background)
	if err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error reading background %s: %v", song.Background, err), Level: LevelVerbose})
		return nil
	}

	if e.settings.CoverArtInTagsResize {
		resized, err := e.imageService.ResizeImage(ctx, artwork, e.settings.CoverArtInTagsMaxSize, e.settings.CoverArtInTagsMaxSize)
		if err != nil {
			return nil
		}
		artwork = resized
	}

	if e.settings.ConvertCoverArtToJPG {
		converted, err := e.imageService.ConvertToJPEG(ctx, artwork)
		if err != nil {
			return nil
		}
		artwork = converted
	}

	return artwork
}

// writePlaylist writes a playlist of this run's extracted songs into
// the output folder.
func (e *Extractor) writePlaylist(ctx context.Context) {
	if len(e.entries) == 0 {
		return
	}

	content := e.playlist.CreatePlaylist(e.entries)
	path := filepath.Join(e.settings.OutputPath, e.settings.PlaylistName+e.playlistFormat.Extension())

	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		e.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	e.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist with %d song(s)", len(e.entries)), Level: LevelSuccess})
}

func (e *Extractor) progress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
