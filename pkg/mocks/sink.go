package mocks

import (
	"image"

	"github.com/user/sceneline/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	enabled bool

	BoundariesJSON map[string][]byte
	DiffTraces     map[string][]byte
	SampleFrames   int
	Snapshots      int
	Storyboards    int
}

// NewDebugSink creates a mock sink with the given enabled state.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:        enabled,
		BoundariesJSON: make(map[string][]byte),
		DiffTraces:     make(map[string][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveBoundariesJSON(videoID string, data []byte) error {
	m.BoundariesJSON[videoID] = data
	return nil
}

func (m *DebugSink) SaveDiffTrace(videoID string, data []byte) error {
	m.DiffTraces[videoID] = data
	return nil
}

func (m *DebugSink) SaveSampleFrame(videoID string, index int, img image.Image) error {
	m.SampleFrames++
	return nil
}

func (m *DebugSink) SaveSnapshot(videoID string, label string, data []byte) error {
	m.Snapshots++
	return nil
}

func (m *DebugSink) SaveStoryboard(videoID string, img image.Image) error {
	m.Storyboards++
	return nil
}

// Ensure DebugSink implements ports.DebugSink
var _ ports.DebugSink = (*DebugSink)(nil)
