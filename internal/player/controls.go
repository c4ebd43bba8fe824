package player

import (
	"time"

	"github.com/gopxl/beep/v2"
)

// Play starts or resumes output of the loaded media.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.IsLoaded() {
		return ErrNotLoaded
	}
	if p.state == Playing {
		return nil
	}

	if !p.queued {
		seq := p.seq
		p.out.Play(beep.Seq(p.volume, beep.Callback(func() {
			// Runs on the audio goroutine with the speaker locked.
			go p.handleEnd(seq)
		})))
		p.queued = true
	}

	p.out.Lock()
	p.ctrl.Paused = false
	p.out.Unlock()
	p.state = Playing
	p.startTickerLocked()
	return nil
}

// Pause holds the current position.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.CanPause() {
		return nil
	}
	p.out.Lock()
	p.ctrl.Paused = true
	p.out.Unlock()
	p.state = Paused
	p.stopTickerLocked()
	return nil
}

// Stop halts output and rewinds to the start. The media stays loaded.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Idle || p.state == Stopped {
		return nil
	}
	p.out.Lock()
	p.ctrl.Paused = true
	err := p.streamer.Seek(0)
	p.out.Unlock()
	p.state = Stopped
	p.stopTickerLocked()
	return err
}

// Seek moves to an absolute position, clamped to the media bounds.
func (p *Player) Seek(position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.state.IsLoaded() {
		return ErrNotLoaded
	}

	n := p.format.SampleRate.N(position)
	n = max(n, 0)
	if length := p.streamer.Len(); length > 0 {
		n = min(n, length)
	}

	p.out.Lock()
	err := p.streamer.Seek(n)
	p.out.Unlock()
	return err
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	p.out.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	p.out.Unlock()
	return pos
}

func (p *Player) durationLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// handleEnd runs once the speaker drained the stream of load seq.
func (p *Player) handleEnd(seq uint64) {
	p.mu.Lock()
	if seq != p.seq || p.state != Playing {
		p.mu.Unlock()
		return
	}

	streamErr := p.streamer.Err()
	p.out.Lock()
	p.ctrl.Paused = true
	_ = p.streamer.Seek(0)
	p.out.Unlock()
	p.queued = false
	p.state = Stopped
	p.stopTickerLocked()
	ev := p.events
	p.mu.Unlock()

	if streamErr != nil {
		p.log.Warn().Str("Method", "handleEnd").Err(streamErr).Msg("stream ended with error")
		ev.Failed(streamErr)
		return
	}
	ev.Finished()
}

// startTickerLocked starts the progress reporter. Caller holds mu.
func (p *Player) startTickerLocked() {
	p.stopTickerLocked()
	stop := make(chan struct{})
	p.tickerStop = stop
	go p.progressLoop(p.seq, p.events, stop)
}

func (p *Player) stopTickerLocked() {
	if p.tickerStop != nil {
		close(p.tickerStop)
		p.tickerStop = nil
	}
}

func (p *Player) progressLoop(seq uint64, ev Events, stop <-chan struct{}) {
	ticker := time.NewTicker(p.cfg.ProgressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			if seq != p.seq || p.state != Playing {
				p.mu.Unlock()
				return
			}
			pos, dur := p.positionLocked(), p.durationLocked()
			p.mu.Unlock()
			ev.Progress(pos, dur)
		}
	}
}
