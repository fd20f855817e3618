package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/handiism/osu-song-extractor/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Directory settings
	SongsPath  string `json:"songs_path"`
	OutputPath string `json:"output_path"`

	// File naming
	NameFormat    string `json:"name_format"`
	PreferUnicode bool   `json:"prefer_unicode"`

	// Tag settings
	ModifyTags            bool `json:"modify_tags"`
	SaveCoverArtInTags    bool `json:"save_cover_art_in_tags"`
	CoverArtInTagsResize  bool `json:"cover_art_in_tags_resize"`
	CoverArtInTagsMaxSize int  `json:"cover_art_in_tags_max_size"`
	ConvertCoverArtToJPG  bool `json:"convert_cover_art_to_jpg"`

	// Playlist settings
	CreatePlaylist bool   `json:"create_playlist"`
	PlaylistFormat string `json:"playlist_format"` // m3u, pls
	PlaylistName   string `json:"playlist_name"`
	M3UExtended    bool   `json:"m3u_extended"`
}

// DefaultSettings returns settings with default values.
//
// SongsPath defaults to the stable osu! install location under the
// user's home directory; OutputPath defaults to a "Music/osu!" folder.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		SongsPath:  filepath.Join(homeDir, "AppData", "Local", "osu!", "Songs"),
		OutputPath: filepath.Join(homeDir, "Music", "osu!"),

		NameFormat:    "{title} - {artist}.mp3",
		PreferUnicode: true,

		ModifyTags:            true,
		SaveCoverArtInTags:    true,
		CoverArtInTagsResize:  true,
		CoverArtInTagsMaxSize: 1000,
		ConvertCoverArtToJPG:  true,

		CreatePlaylist: false,
		PlaylistFormat: "m3u",
		PlaylistName:   "osu! songs",
		M3UExtended:    false,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so the tool
// works out of the box on first run.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ToSongConfig converts settings to SongConfig.
func (s *Settings) ToSongConfig() *model.SongConfig {
	return &model.SongConfig{
		NameFormat:    s.NameFormat,
		PreferUnicode: s.PreferUnicode,
	}
}
