//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/mediacontroller/internal/playback"
	"github.com/llehouerou/mediacontroller/internal/player"
)

const busName = "mediactl"

// Adapter exposes a playback.Controller on the MPRIS D-Bus interface.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
}

// New creates and starts a new MPRIS adapter. mixer may be nil.
func New(c *playback.Controller, mixer player.Mixer, log zerolog.Logger) (*Adapter, error) {
	a := &Adapter{log: log}
	a.server = server.NewServer(busName, &rootAdapter{}, &playerAdapter{c: c, mixer: mixer})

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Str("Method", "Listen").Err(err).Msg("mpris server stopped")
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil
}

func (r *rootAdapter) Quit() error {
	return nil
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "mediactl", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file", "http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	c     *playback.Controller
	mixer player.Mixer
}

// Next has no meaning for a single media item.
func (p *playerAdapter) Next() error {
	return nil
}

// Previous restarts the current media.
func (p *playerAdapter) Previous() error {
	p.c.PlayFromBeginning()
	return nil
}

func (p *playerAdapter) Pause() error {
	p.c.Pause()
	return nil
}

func (p *playerAdapter) PlayPause() error {
	if p.c.State().CanPause() {
		p.c.Pause()
		return nil
	}
	p.c.PlayFromCurrentTime()
	return nil
}

func (p *playerAdapter) Stop() error {
	p.c.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	if p.c.State() == playback.StatePlaying {
		return nil
	}
	p.c.PlayFromCurrentTime()
	return nil
}

// Seek moves by offset relative to the current position while playing.
func (p *playerAdapter) Seek(offset types.Microseconds) error {
	if p.c.State() != playback.StatePlaying {
		return nil
	}
	target := max(p.c.Position()+time.Duration(offset)*time.Microsecond, 0)
	p.c.PlayFrom(target)
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	if trackID != formatTrackID(p.c.MediaURL()) || p.c.State() != playback.StatePlaying {
		return nil
	}
	p.c.PlayFrom(time.Duration(position) * time.Microsecond)
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(uri string) error {
	p.c.UpdateWithMediaURL(uri)
	p.c.PlayFromBeginning()
	return nil
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.c.State()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.c.Media(), p.c.MediaTitle()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	switch {
	case p.mixer == nil:
		return 1.0, nil
	case p.mixer.Muted():
		return 0, nil
	}
	return p.mixer.Volume(), nil
}

func (p *playerAdapter) SetVolume(level float64) error {
	if p.mixer != nil {
		p.mixer.SetVolume(level)
	}
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.c.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.c.Media().Loaded(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.c.Media().Loaded(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.c.State().CanPause(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.c.State() == playback.StatePlaying, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

// playbackStatus maps controller states onto MPRIS statuses. MPRIS has no
// failure status, so Failed reports Stopped.
func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateStopped, playback.StateFailed:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func metadata(media playback.MediaReference, title string) types.Metadata {
	if media.URL == "" {
		return types.Metadata{}
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(media.URL)),
		Title:   title,
		Url:     media.URL,
	}
	if media.DurationKnown {
		meta.Length = types.Microseconds(media.Duration.Microseconds())
	}
	return meta
}

func formatTrackID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
