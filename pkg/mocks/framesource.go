// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"image"

	"github.com/user/sceneline/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource. Unless a Func
// field overrides it, Seek records the call, tracks the position and
// succeeds, so tests can assert position restoration.
type FrameSource struct {
	IDFunc           func() string
	DurationFunc     func() (float64, bool)
	DimensionsFunc   func() (int, int)
	SeekFunc         func(ctx context.Context, t float64) error
	CurrentFrameFunc func() image.Image

	// Recorded calls for verification
	SeekCalls []float64

	pos float64
}

func (m *FrameSource) ID() string {
	if m.IDFunc != nil {
		return m.IDFunc()
	}
	return "mock-video"
}

func (m *FrameSource) Duration() (float64, bool) {
	if m.DurationFunc != nil {
		return m.DurationFunc()
	}
	return 0, false
}

func (m *FrameSource) Dimensions() (int, int) {
	if m.DimensionsFunc != nil {
		return m.DimensionsFunc()
	}
	return 640, 360
}

func (m *FrameSource) Seek(ctx context.Context, t float64) error {
	m.SeekCalls = append(m.SeekCalls, t)
	if m.SeekFunc != nil {
		if err := m.SeekFunc(ctx, t); err != nil {
			return err
		}
	}
	m.pos = t
	return nil
}

func (m *FrameSource) Position() float64 {
	return m.pos
}

// SetPosition primes the tracked position without recording a seek.
func (m *FrameSource) SetPosition(t float64) {
	m.pos = t
}

func (m *FrameSource) CurrentFrame() image.Image {
	if m.CurrentFrameFunc != nil {
		return m.CurrentFrameFunc()
	}
	return image.NewRGBA(image.Rect(0, 0, 640, 360))
}

// Ensure FrameSource implements ports.FrameSource
var _ ports.FrameSource = (*FrameSource)(nil)
