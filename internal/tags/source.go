package tags

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediacontroller/internal/playback"
	"github.com/llehouerou/mediacontroller/internal/player"
)

// Source is a playback.DataSource that derives titles from file tags, or
// from the locator when no tag is available. Titles are cached per URL.
type Source struct {
	log zerolog.Logger

	mu    sync.Mutex
	cache map[string]string
}

var _ playback.DataSource = (*Source)(nil)

// NewSource creates an empty title source.
func NewSource(log zerolog.Logger) *Source {
	return &Source{log: log, cache: make(map[string]string)}
}

// MediaTitle returns the title of the controller's current media.
func (s *Source) MediaTitle(c *playback.Controller) string {
	return s.Title(c.MediaURL())
}

// Title resolves the display title for url.
func (s *Source) Title(url string) string {
	if url == "" {
		return ""
	}

	s.mu.Lock()
	title, ok := s.cache[url]
	s.mu.Unlock()
	if ok {
		return title
	}

	title = s.resolve(url)

	s.mu.Lock()
	s.cache[url] = title
	s.mu.Unlock()
	return title
}

func (s *Source) resolve(url string) string {
	loc, err := player.ParseLocator(url)
	if err != nil {
		return url
	}
	if !loc.IsRemote() && IsMediaFile(loc.Path) {
		t, err := Read(loc.Path)
		if err != nil {
			s.log.Debug().Str("Method", "MediaTitle").Str("Path", loc.Path).Err(err).Msg("no readable tags")
		} else if title := t.DisplayTitle(); title != "" {
			return title
		}
	}
	if name := loc.Name(); name != "" {
		return name
	}
	return url
}
