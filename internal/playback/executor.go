package playback

import "sync"

// executor runs jobs one at a time, in submission order, on a single
// goroutine. The queue is unbounded so submit never blocks, which lets jobs
// submit further jobs.
type executor struct {
	mu      sync.Mutex
	jobs    []func()
	stopped bool
	wake    chan struct{}
	done    chan struct{}
}

func newExecutor() *executor {
	e := &executor{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go e.run()
	return e
}

// submit queues job. It returns false once the executor is shut down.
func (e *executor) submit(job func()) bool {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return false
	}
	e.jobs = append(e.jobs, job)
	e.mu.Unlock()

	e.signal()
	return true
}

// shutdown queues final as the last job and rejects later submissions.
// Jobs already queued still run.
func (e *executor) shutdown(final func()) {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.jobs = append(e.jobs, final)
	e.stopped = true
	e.mu.Unlock()

	e.signal()
}

func (e *executor) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *executor) run() {
	defer close(e.done)
	for {
		e.mu.Lock()
		if len(e.jobs) == 0 {
			stopped := e.stopped
			e.mu.Unlock()
			if stopped {
				return
			}
			<-e.wake
			continue
		}
		job := e.jobs[0]
		e.jobs[0] = nil
		e.jobs = e.jobs[1:]
		e.mu.Unlock()

		job()
	}
}
