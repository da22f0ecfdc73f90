// Package memsource provides a frame source backed by pre-decoded in-memory frames.
package memsource

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/user/sceneline/pkg/ports"
)

// Frame is a decoded frame positioned on the media timeline.
type Frame struct {
	Timestamp float64
	Image     image.Image
}

// Source implements ports.FrameSource over a slice of decoded frames.
// Seeking selects the latest frame at or before the requested time.
type Source struct {
	id       string
	frames   []Frame
	duration float64
	known    bool

	pos     float64
	current image.Image
}

// New creates a source with a known duration. Frames must carry
// non-decreasing timestamps.
func New(id string, duration float64, frames []Frame) (*Source, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames provided")
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Timestamp < frames[i-1].Timestamp {
			return nil, fmt.Errorf("frames out of order at index %d", i)
		}
	}
	s := &Source{
		id:       id,
		frames:   frames,
		duration: duration,
		known:    duration > 0,
	}
	s.current = frames[0].Image
	return s, nil
}

// NewUnbounded creates a source whose duration is not known, such as a
// clip still being written.
func NewUnbounded(id string, frames []Frame) (*Source, error) {
	s, err := New(id, 0, frames)
	if err != nil {
		return nil, err
	}
	s.known = false
	return s, nil
}

// ID returns the source identifier.
func (s *Source) ID() string {
	return s.id
}

// Duration returns the media duration in seconds and whether it is known.
func (s *Source) Duration() (float64, bool) {
	return s.duration, s.known
}

// Dimensions returns the pixel size of the first frame.
func (s *Source) Dimensions() (int, int) {
	bounds := s.frames[0].Image.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// Seek positions the source at the given time in seconds.
func (s *Source) Seek(ctx context.Context, t float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t < 0 {
		return fmt.Errorf("seek before start: %f", t)
	}

	// Latest frame at or before t; the first frame covers anything earlier.
	idx := sort.Search(len(s.frames), func(i int) bool {
		return s.frames[i].Timestamp > t
	})
	if idx > 0 {
		idx--
	}

	s.current = s.frames[idx].Image
	s.pos = t
	return nil
}

// Position returns the current playback position in seconds.
func (s *Source) Position() float64 {
	return s.pos
}

// CurrentFrame returns the frame at the current position.
func (s *Source) CurrentFrame() image.Image {
	return s.current
}

// Ensure Source implements ports.FrameSource
var _ ports.FrameSource = (*Source)(nil)
