// Package tags reads media metadata and supplies display titles to playback
// controllers.
package tags

import "strings"

// File extensions the tag reader understands.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
	ExtWAV  = ".wav"
)

// Tag contains the metadata used to label media.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
}

// DisplayTitle formats the tag as "Artist - Title", or just the title when
// no artist is known.
func (t *Tag) DisplayTitle() string {
	title := strings.TrimSpace(t.Title)
	artist := strings.TrimSpace(t.Artist)
	if artist == "" {
		artist = strings.TrimSpace(t.AlbumArtist)
	}
	switch {
	case title == "":
		return ""
	case artist == "":
		return title
	default:
		return artist + " - " + title
	}
}

// IsMediaFile returns true if the path has an extension the tag reader
// understands.
func IsMediaFile(path string) bool {
	ext := strings.ToLower(path)
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx:]
	} else {
		return false
	}
	return ext == ExtMP3 || ext == ExtFLAC || ext == ExtOGG || ext == ExtWAV
}
