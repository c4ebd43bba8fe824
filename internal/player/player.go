package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog"
)

// Config tunes the concrete backend.
type Config struct {
	ProgressInterval time.Duration
	HTTPRetryMax     int
	HTTPTimeout      time.Duration
	Volume           float64
}

// Player is a beep based media backend for local files and HTTP URLs.
type Player struct {
	mu     sync.Mutex
	cfg    Config
	client *http.Client
	out    output
	log    zerolog.Logger

	// guarded by mu
	state      State
	seq        uint64
	loadCancel context.CancelFunc
	events     Events
	streamer   beep.StreamSeekCloser
	format     beep.Format
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	queued     bool // stream currently attached to the speaker mixer
	tickerStop chan struct{}
	closed     bool

	volumeLevel float64
	muted       bool
}

// New creates a backend. Zero config values are replaced by defaults.
func New(cfg Config, log zerolog.Logger) *Player {
	return newPlayer(cfg, speakerOutput{}, log)
}

func newPlayer(cfg Config, out output, log zerolog.Logger) *Player {
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = 250 * time.Millisecond
	}
	if cfg.HTTPRetryMax < 0 {
		cfg.HTTPRetryMax = 0
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 20 * time.Second
	}
	if cfg.Volume <= 0 || cfg.Volume > 1 {
		cfg.Volume = 1
	}
	return &Player{
		cfg:         cfg,
		client:      newHTTPClient(cfg.HTTPRetryMax, cfg.HTTPTimeout),
		out:         out,
		log:         log,
		state:       Idle,
		volumeLevel: cfg.Volume,
	}
}

// State returns the backend transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load releases the current media and prepares url in the background.
func (p *Player) Load(url string, ev Events) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		ev.PrepareFailed(fmt.Errorf("load %s: %w", url, ErrClosed))
		return
	}
	p.releaseLocked()
	p.seq++
	seq := p.seq
	ctx, cancel := context.WithCancel(context.Background())
	p.loadCancel = cancel
	p.mu.Unlock()

	p.log.Debug().Str("Method", "Load").Str("URL", url).Uint64("Seq", seq).Msg("loading media")
	go p.prepare(ctx, seq, url, ev)
}

func (p *Player) prepare(ctx context.Context, seq uint64, raw string, ev Events) {
	streamer, format, err := p.decode(ctx, raw, ev)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Debug().Str("Method", "prepare").Str("URL", raw).Err(err).Msg("prepare failed")
		ev.PrepareFailed(err)
		return
	}

	if err := p.out.Init(); err != nil {
		streamer.Close()
		ev.PrepareFailed(fmt.Errorf("init audio output: %w", err))
		return
	}

	p.attach(seq, streamer, format, ev)
}

// attach makes streamer the current media of load seq and reports it
// prepared. A superseded load closes the streamer without an event.
func (p *Player) attach(seq uint64, streamer beep.StreamSeekCloser, format beep.Format, ev Events) {
	p.mu.Lock()
	if seq != p.seq || p.closed {
		p.mu.Unlock()
		streamer.Close()
		return
	}

	var out beep.Streamer = streamer
	if rate := p.out.SampleRate(); format.SampleRate != rate {
		out = beep.Resample(4, format.SampleRate, rate, streamer)
	}
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2, Volume: levelToVolume(p.volumeLevel), Silent: p.muted}
	p.events = ev
	p.state = Stopped
	length := streamer.Len()
	p.mu.Unlock()

	ev.Prepared(format.SampleRate.D(length), length > 0)
}

func (p *Player) decode(ctx context.Context, raw string, ev Events) (beep.StreamSeekCloser, beep.Format, error) {
	loc, err := ParseLocator(raw)
	if err != nil {
		return nil, beep.Format{}, err
	}

	src, err := p.open(ctx, loc, ev)
	if err != nil {
		return nil, beep.Format{}, err
	}

	kind, err := sniff(src, loc)
	if err != nil {
		src.Close()
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch kind {
	case formatMP3:
		streamer, format, err = decodeGoMP3(src)
	case formatFLAC:
		// Some taggers prepend ID3v2 to FLAC files
		if err := skipID3v2(src); err != nil {
			src.Close()
			return nil, beep.Format{}, err
		}
		streamer, format, err = flac.Decode(src)
	case formatVorbis:
		streamer, format, err = vorbis.Decode(src)
	case formatWAV:
		streamer, format, err = wav.Decode(src)
	}
	if err != nil {
		src.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", kind, err)
	}
	return streamer, format, nil
}

// releaseLocked detaches and closes the current media. Caller holds mu.
func (p *Player) releaseLocked() {
	if p.loadCancel != nil {
		p.loadCancel()
		p.loadCancel = nil
	}
	p.stopTickerLocked()

	if p.streamer != nil {
		p.out.Lock()
		p.ctrl.Paused = true
		p.out.Unlock()
		p.out.Clear()
		p.streamer.Close()
	}

	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.events = nil
	p.queued = false
	p.state = Idle
}

// Close releases the media and rejects further loads.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.releaseLocked()
	p.seq++
	p.closed = true
	return nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the stream.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && n < len(header) {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	if string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Syncsafe integer: 7 bits per byte
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
