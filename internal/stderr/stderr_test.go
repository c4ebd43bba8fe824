//go:build !windows

package stderr

import (
	"bufio"
	"bytes"
	"strings"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
)

func TestForward(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	input := "ALSA lib pcm.c: underrun occurred\n\n   \nsecond line  \n"
	forward(bufio.NewScanner(strings.NewReader(input)), log)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("logged %d lines, want 2: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"message":"ALSA lib pcm.c: underrun occurred"`) {
		t.Errorf("first line = %s", lines[0])
	}
	if !strings.Contains(lines[1], `"message":"second line"`) {
		t.Errorf("second line = %s", lines[1])
	}
	if !strings.Contains(lines[0], `"level":"warn"`) || !strings.Contains(lines[0], `"Source":"stderr"`) {
		t.Errorf("missing level or source field: %s", lines[0])
	}
}

func TestCapture(t *testing.T) {
	var buf bytes.Buffer
	c, err := Start(zerolog.New(&buf))
	if err != nil {
		t.Skipf("cannot redirect stderr: %v", err)
	}

	if _, err := syscall.Write(2, []byte("lib: device busy\n")); err != nil {
		c.Stop()
		t.Fatalf("write fd 2: %v", err)
	}
	c.Stop()

	if !strings.Contains(buf.String(), `"message":"lib: device busy"`) {
		t.Errorf("captured log = %q, want the fd 2 line", buf.String())
	}
}

func TestCapture_NilStop(t *testing.T) {
	var c *Capture
	c.Stop()
}
