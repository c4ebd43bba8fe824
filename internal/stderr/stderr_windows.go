//go:build windows

// Package stderr is a no-op on Windows.
package stderr

import "github.com/rs/zerolog"

// Capture does nothing on Windows.
type Capture struct{}

// Start returns an inactive capture.
func Start(_ zerolog.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// Stop does nothing.
func (c *Capture) Stop() {}
