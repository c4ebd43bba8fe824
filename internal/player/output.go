package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// output is the audio device streams are mixed into. Lock guards every
// streamer attached with Play.
type output interface {
	Init() error
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

// The speaker runs at a fixed rate; every stream is resampled to it so the
// audio device is initialised once per process.
var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate = beep.SampleRate(44100)
)

// speakerOutput drives the process-wide beep speaker.
type speakerOutput struct{}

func (speakerOutput) Init() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	return speakerErr
}

func (speakerOutput) SampleRate() beep.SampleRate { return speakerRate }
func (speakerOutput) Play(s beep.Streamer)        { speaker.Play(s) }
func (speakerOutput) Clear()                      { speaker.Clear() }
func (speakerOutput) Lock()                       { speaker.Lock() }
func (speakerOutput) Unlock()                     { speaker.Unlock() }
