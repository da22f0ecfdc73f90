package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate detection results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveBoundariesJSON saves the detected boundary list as JSON.
	SaveBoundariesJSON(videoID string, data []byte) error

	// SaveDiffTrace saves the per-sample difference trace as JSON.
	SaveDiffTrace(videoID string, data []byte) error

	// SaveSampleFrame saves a downsampled frame from a detection pass.
	SaveSampleFrame(videoID string, index int, img image.Image) error

	// SaveSnapshot saves an encoded frame snapshot.
	SaveSnapshot(videoID string, label string, data []byte) error

	// SaveStoryboard saves a rendered storyboard image.
	SaveStoryboard(videoID string, img image.Image) error
}
