package playback

import "time"

// MediaReference describes the media currently attached to a controller.
// It is replaced wholesale by UpdateWithMediaURL.
type MediaReference struct {
	URL           string
	Duration      time.Duration
	DurationKnown bool
	Err           error // non-nil only in StateFailed
}

// Loaded returns true if a locator has been set.
func (m MediaReference) Loaded() bool {
	return m.URL != ""
}
