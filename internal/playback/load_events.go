package playback

import (
	"time"

	"github.com/llehouerou/mediacontroller/internal/player"
)

// loadEvents is the backend sink for one load. Every callback is moved onto
// the executor tagged with the load's generation, so callbacks from a
// superseded load are recognised and dropped there.
type loadEvents struct {
	c   *Controller
	gen uint64
}

var _ player.Events = (*loadEvents)(nil)

func (e *loadEvents) Prepared(duration time.Duration, known bool) {
	e.c.exec.submit(func() { e.c.onPrepared(e.gen, duration, known) })
}

func (e *loadEvents) PrepareFailed(err error) {
	e.c.exec.submit(func() { e.c.onPrepareFailed(e.gen, err) })
}

func (e *loadEvents) BufferingChanged(b player.Buffering) {
	e.c.exec.submit(func() { e.c.onBufferingChanged(e.gen, b) })
}

func (e *loadEvents) Progress(position, duration time.Duration) {
	e.c.exec.submit(func() { e.c.onProgress(e.gen, position, duration) })
}

func (e *loadEvents) Finished() {
	e.c.exec.submit(func() { e.c.onFinished(e.gen) })
}

func (e *loadEvents) Failed(err error) {
	e.c.exec.submit(func() { e.c.onFailed(e.gen, err) })
}
