package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhowden/tag"
	"github.com/handiism/osu-song-extractor/internal/config"
)

func beatmapDescription(title, artist string) string {
	return fmt.Sprintf("[General]\nAudioFilename: song.mp3\n\n[Metadata]\nTitle: %s\nArtist: %s\n", title, artist)
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()

	settings := config.DefaultSettings()
	settings.SongsPath = t.TempDir()
	settings.OutputPath = t.TempDir()
	settings.SaveCoverArtInTags = false
	return settings
}

// writeBeatmapFolder creates a loose beatmap folder under the songs root.
func writeBeatmapFolder(t *testing.T, songsPath, folder, description string, audio []byte) {
	t.Helper()

	dir := filepath.Join(songsPath, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "map.osu"), []byte(description), 0644); err != nil {
		t.Fatal(err)
	}
	if audio != nil {
		if err := os.WriteFile(filepath.Join(dir, "song.mp3"), audio, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func buildArchive(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func runExtractor(t *testing.T, settings *config.Settings) (int, []ProgressEvent) {
	t.Helper()

	var events []ProgressEvent
	extractor := NewExtractor(settings, func(event ProgressEvent) {
		events = append(events, event)
	})

	count, err := extractor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return count, events
}

func TestRun_ExtractsFolderBeatmap(t *testing.T) {
	settings := testSettings(t)
	writeBeatmapFolder(t, settings.SongsPath, "1 Bar - Foo", beatmapDescription("Foo", "Bar"), []byte("audio payload"))

	count, _ := runExtractor(t, settings)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	outPath := filepath.Join(settings.OutputPath, "Foo - Bar.mp3")
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		t.Fatalf("reading output tags: %v", err)
	}
	if m.Title() != "Foo" || m.Artist() != "Bar" {
		t.Errorf("tags = %q/%q, want Foo/Bar", m.Title(), m.Artist())
	}
}

func TestRun_SecondRunIsIdempotent(t *testing.T) {
	settings := testSettings(t)
	writeBeatmapFolder(t, settings.SongsPath, "1 Bar - Foo", beatmapDescription("Foo", "Bar"), []byte("audio payload"))

	count, _ := runExtractor(t, settings)
	if count != 1 {
		t.Fatalf("first run count = %d, want 1", count)
	}

	outPath := filepath.Join(settings.OutputPath, "Foo - Bar.mp3")
	before, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	count, _ = runExtractor(t, settings)
	if count != 0 {
		t.Errorf("second run count = %d, want 0", count)
	}

	after, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Error("second run modified an already-extracted file")
	}
}

func TestRun_MissingAudioSkipped(t *testing.T) {
	settings := testSettings(t)
	writeBeatmapFolder(t, settings.SongsPath, "1 Bar - Foo", beatmapDescription("Foo", "Bar"), nil)

	count, _ := runExtractor(t, settings)

	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	if _, err := os.Stat(filepath.Join(settings.OutputPath, "Foo - Bar.mp3")); !os.IsNotExist(err) {
		t.Error("no output file should be created for a beatmap without audio")
	}
}

func TestRun_SingleMapArchive(t *testing.T) {
	settings := testSettings(t)

	archive := buildArchive(t, map[string][]byte{
		"map.osu":  []byte(beatmapDescription("Foo", "Bar")),
		"song.mp3": []byte("audio payload"),
	})
	if err := os.WriteFile(filepath.Join(settings.SongsPath, "1 Bar - Foo.osz"), archive, 0644); err != nil {
		t.Fatal(err)
	}

	count, _ := runExtractor(t, settings)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
	if _, err := os.Stat(filepath.Join(settings.OutputPath, "Foo - Bar.mp3")); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestRun_PackArchive(t *testing.T) {
	settings := testSettings(t)

	first := buildArchive(t, map[string][]byte{
		"map.osu":  []byte(beatmapDescription("Foo", "Bar")),
		"song.mp3": []byte("first audio"),
	})
	second := buildArchive(t, map[string][]byte{
		"map.osu":  []byte(beatmapDescription("Baz", "Qux")),
		"song.mp3": []byte("second audio"),
	})
	pack := buildArchive(t, map[string][]byte{
		"1 Bar - Foo.osz": first,
		"2 Qux - Baz.osz": second,
		"readme.txt":      []byte("not a beatmap"),
	})

	if err := os.WriteFile(filepath.Join(settings.SongsPath, "pack.zip"), pack, 0644); err != nil {
		t.Fatal(err)
	}

	count, _ := runExtractor(t, settings)

	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	for _, name := range []string{"Foo - Bar.mp3", "Baz - Qux.mp3"} {
		if _, err := os.Stat(filepath.Join(settings.OutputPath, name)); err != nil {
			t.Errorf("output file %s missing: %v", name, err)
		}
	}
}

func TestRun_OggAudioRenamedAndNotTagged(t *testing.T) {
	settings := testSettings(t)
	payload := []byte("OggS\x00\x02 pretend vorbis data")
	writeBeatmapFolder(t, settings.SongsPath, "1 Bar - Foo", beatmapDescription("Foo", "Bar"), payload)

	count, _ := runExtractor(t, settings)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	if _, err := os.Stat(filepath.Join(settings.OutputPath, "Foo - Bar.mp3")); !os.IsNotExist(err) {
		t.Error(".mp3 path should not exist after rename")
	}

	oggPath := filepath.Join(settings.OutputPath, "Foo - Bar.ogg")
	data, err := os.ReadFile(oggPath)
	if err != nil {
		t.Fatalf("renamed .ogg file missing: %v", err)
	}
	// Tag writer must not have touched the renamed file.
	if !bytes.Equal(data, payload) {
		t.Error("renamed .ogg file was modified")
	}
}

func TestRun_PreexistingOutputUntouched(t *testing.T) {
	settings := testSettings(t)
	writeBeatmapFolder(t, settings.SongsPath, "1 Bar - Foo", beatmapDescription("Foo", "Bar"), []byte("audio payload"))

	outPath := filepath.Join(settings.OutputPath, "Foo - Bar.mp3")
	if err := os.WriteFile(outPath, []byte("previously extracted"), 0644); err != nil {
		t.Fatal(err)
	}

	count, _ := runExtractor(t, settings)

	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previously extracted" {
		t.Error("pre-existing output file was modified")
	}
}

func TestRun_NonBeatmapFolderSkipped(t *testing.T) {
	settings := testSettings(t)
	if err := os.MkdirAll(filepath.Join(settings.SongsPath, "Skins"), 0755); err != nil {
		t.Fatal(err)
	}

	count, events := runExtractor(t, settings)

	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	// The run must still finish with a total.
	last := events[len(events)-1]
	if last.Level != LevelSuccess || !strings.Contains(last.Message, "0 song(s)") {
		t.Errorf("final event = %+v, want success with zero count", last)
	}
}

func TestRun_MissingSongsFolderIsFatal(t *testing.T) {
	settings := testSettings(t)
	settings.SongsPath = filepath.Join(settings.SongsPath, "does-not-exist")

	extractor := NewExtractor(settings, nil)
	if _, err := extractor.Run(context.Background()); err == nil {
		t.Error("Run should fail when the songs folder does not exist")
	}
}

func TestRun_WritesPlaylist(t *testing.T) {
	settings := testSettings(t)
	settings.CreatePlaylist = true
	settings.PlaylistFormat = "m3u"
	writeBeatmapFolder(t, settings.SongsPath, "1 Bar - Foo", beatmapDescription("Foo", "Bar"), []byte("audio payload"))

	count, _ := runExtractor(t, settings)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	content, err := os.ReadFile(filepath.Join(settings.OutputPath, settings.PlaylistName+".m3u"))
	if err != nil {
		t.Fatalf("playlist missing: %v", err)
	}
	if !strings.Contains(string(content), "Foo - Bar.mp3") {
		t.Error("playlist should reference the extracted song")
	}
}

func TestRun_NameOrdering(t *testing.T) {
	settings := testSettings(t)
	settings.NameFormat = "{artist} - {title}.mp3"
	writeBeatmapFolder(t, settings.SongsPath, "1 Bar - Foo", beatmapDescription("Foo", "Bar"), []byte("audio payload"))

	count, _ := runExtractor(t, settings)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	if _, err := os.Stat(filepath.Join(settings.OutputPath, "Bar - Foo.mp3")); err != nil {
		t.Errorf("artist-first output file missing: %v", err)
	}
}
