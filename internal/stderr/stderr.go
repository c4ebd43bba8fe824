//go:build !windows

// Package stderr captures output that audio libraries write directly to
// file descriptor 2, bypassing Go's os.Stderr, and forwards it to a logger
// so it does not corrupt the TUI layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
)

// Capture is an active redirection of fd 2.
type Capture struct {
	orig int
	r, w *os.File
	done chan struct{}
}

// Start redirects fd 2 into a pipe and logs every non-empty line written to
// it at warn level. Call it before the audio device is opened. On error the
// original stderr is left in place.
func Start(log zerolog.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		forward(bufio.NewScanner(r), log)
	}()
	return c, nil
}

// Stop restores the original stderr and waits until the captured lines are
// logged. It is safe on a nil Capture.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)

	// the pipe's last writer is gone once w is closed
	c.w.Close()
	<-c.done
	c.r.Close()
}

func forward(scanner *bufio.Scanner, log zerolog.Logger) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			log.Warn().Str("Source", "stderr").Msg(line)
		}
	}
}
