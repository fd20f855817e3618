package beatmap

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/handiism/osu-song-extractor/internal/model"
)

const testDescription = `osu file format v14

[General]
AudioFilename: song.mp3
AudioLeadIn: 0

[Metadata]
Title:Foo
TitleUnicode:フーバー
Artist: Bar
ArtistUnicode:
Creator:someone

[Events]
//Background and Video events
0,0,"bg.jpg",0,0
`

func testSongConfig() *model.SongConfig {
	return &model.SongConfig{
		NameFormat:    "{title} - {artist}.mp3",
		PreferUnicode: false,
	}
}

func TestGetSection(t *testing.T) {
	general, err := GetSection([]byte(testDescription), "General")
	if err != nil {
		t.Fatalf("GetSection(General) error: %v", err)
	}

	want := map[string]string{
		"AudioFilename": "song.mp3",
		"AudioLeadIn":   "0",
	}
	if !reflect.DeepEqual(general, want) {
		t.Errorf("GetSection(General) = %v, want %v", general, want)
	}
}

func TestGetSection_TrimsWhitespace(t *testing.T) {
	metadata, err := GetSection([]byte(testDescription), "Metadata")
	if err != nil {
		t.Fatalf("GetSection(Metadata) error: %v", err)
	}

	if metadata["Artist"] != "Bar" {
		t.Errorf("Artist = %q, want value trimmed of whitespace", metadata["Artist"])
	}
	if metadata["ArtistUnicode"] != "" {
		t.Errorf("ArtistUnicode = %q, want empty value", metadata["ArtistUnicode"])
	}
}

func TestGetSection_SurroundingBlankLines(t *testing.T) {
	data := []byte("\n\n[Metadata]\n\nTitle: Foo\n\nArtist: Bar\n\n\n[HitObjects]\n")

	metadata, err := GetSection(data, "Metadata")
	if err != nil {
		t.Fatalf("GetSection error: %v", err)
	}

	want := map[string]string{"Title": "Foo", "Artist": "Bar"}
	if !reflect.DeepEqual(metadata, want) {
		t.Errorf("GetSection = %v, want %v", metadata, want)
	}
}

func TestGetSection_Missing(t *testing.T) {
	_, err := GetSection([]byte(testDescription), "TimingPoints")
	if !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("GetSection(TimingPoints) error = %v, want ErrSectionNotFound", err)
	}
}

func writeBeatmapDir(t *testing.T, description string, extras ...string) string {
	t.Helper()

	dir := t.TempDir()
	if description != "" {
		if err := os.WriteFile(filepath.Join(dir, "map.osu"), []byte(description), 0644); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range extras {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("payload"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestAnalyze_Directory(t *testing.T) {
	dir := writeBeatmapDir(t, testDescription, "song.mp3", "bg.jpg")

	song, err := Analyze(NewDirSource(dir), testSongConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if song.AudioFilename != "song.mp3" {
		t.Errorf("AudioFilename = %q, want %q", song.AudioFilename, "song.mp3")
	}
	if song.Title != "Foo" || song.Artist != "Bar" {
		t.Errorf("Title/Artist = %q/%q, want Foo/Bar", song.Title, song.Artist)
	}
	if song.Background != "bg.jpg" {
		t.Errorf("Background = %q, want %q", song.Background, "bg.jpg")
	}
	if song.OutputName != "Foo - Bar.mp3" {
		t.Errorf("OutputName = %q, want %q", song.OutputName, "Foo - Bar.mp3")
	}
}

func TestAnalyze_NoDescriptionFile(t *testing.T) {
	dir := writeBeatmapDir(t, "", "song.mp3")

	_, err := Analyze(NewDirSource(dir), testSongConfig())
	if !errors.Is(err, ErrNoSong) {
		t.Errorf("Analyze error = %v, want ErrNoSong", err)
	}
}

func TestAnalyze_MissingAudioFile(t *testing.T) {
	// Description references song.mp3 but the file is absent.
	dir := writeBeatmapDir(t, testDescription, "bg.jpg")

	_, err := Analyze(NewDirSource(dir), testSongConfig())
	if !errors.Is(err, ErrNoSong) {
		t.Errorf("Analyze error = %v, want ErrNoSong", err)
	}
}

func TestAnalyze_IncompleteMetadata(t *testing.T) {
	description := "[General]\nAudioFilename: song.mp3\n[Metadata]\nTitle: Foo\n"
	dir := writeBeatmapDir(t, description, "song.mp3")

	_, err := Analyze(NewDirSource(dir), testSongConfig())
	if !errors.Is(err, ErrNoSong) {
		t.Errorf("Analyze error = %v, want ErrNoSong", err)
	}
}

func TestAnalyze_MissingBackgroundIgnored(t *testing.T) {
	// Events names bg.jpg but the file is absent; the song is still valid.
	dir := writeBeatmapDir(t, testDescription, "song.mp3")

	song, err := Analyze(NewDirSource(dir), testSongConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if song.Background != "" {
		t.Errorf("Background = %q, want empty for missing file", song.Background)
	}
}

func buildZip(t *testing.T, files map[string][]byte) []byte {
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

func TestZipSource(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"map.osu":  []byte(testDescription),
		"song.mp3": []byte("payload"),
	})

	src, err := NewZipSourceFromBytes("fixture.osz", data)
	if err != nil {
		t.Fatalf("NewZipSourceFromBytes error: %v", err)
	}

	names, err := src.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("List returned %d names, want 2", len(names))
	}

	if !src.Exists("song.mp3") {
		t.Error("Exists(song.mp3) = false, want true")
	}
	if src.Exists("other.mp3") {
		t.Error("Exists(other.mp3) = true, want false")
	}

	payload, err := src.ReadFile("song.mp3")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(payload) != "payload" {
		t.Errorf("ReadFile = %q, want %q", payload, "payload")
	}
}

func TestAnalyze_ZipSource(t *testing.T) {
	data := buildZip(t, map[string][]byte{
		"map.osu":  []byte(testDescription),
		"song.mp3": []byte("payload"),
	})

	src, err := NewZipSourceFromBytes("fixture.osz", data)
	if err != nil {
		t.Fatal(err)
	}

	song, err := Analyze(src, testSongConfig())
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if song.OutputName != "Foo - Bar.mp3" {
		t.Errorf("OutputName = %q, want %q", song.OutputName, "Foo - Bar.mp3")
	}
}

func TestOpenZipSource(t *testing.T) {
	data := buildZip(t, map[string][]byte{"map.osu": []byte(testDescription)})

	path := filepath.Join(t.TempDir(), "fixture.osz")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	src, err := OpenZipSource(path)
	if err != nil {
		t.Fatalf("OpenZipSource error: %v", err)
	}
	defer src.Close()

	if !src.Exists("map.osu") {
		t.Error("Exists(map.osu) = false, want true")
	}
}
