// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/sceneline/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveBoundariesJSON does nothing.
func (s *Sink) SaveBoundariesJSON(videoID string, data []byte) error {
	return nil
}

// SaveDiffTrace does nothing.
func (s *Sink) SaveDiffTrace(videoID string, data []byte) error {
	return nil
}

// SaveSampleFrame does nothing.
func (s *Sink) SaveSampleFrame(videoID string, index int, img image.Image) error {
	return nil
}

// SaveSnapshot does nothing.
func (s *Sink) SaveSnapshot(videoID string, label string, data []byte) error {
	return nil
}

// SaveStoryboard does nothing.
func (s *Sink) SaveStoryboard(videoID string, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
