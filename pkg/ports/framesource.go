package ports

import (
	"context"
	"image"
)

// FrameSource abstracts a decodable video resource with timed pixel access.
// Implementations wrap a real decoder; the core only depends on this
// contract. Seek is await-style: it returns once the frame at the requested
// time is decoded and readable through CurrentFrame, or with an error.
//
// A FrameSource is a shared resource within one editing session. Callers must
// await each Seek before issuing the next; there is no internal queueing.
type FrameSource interface {
	// ID returns the opaque asset identifier.
	ID() string

	// Duration returns the total duration in seconds. ok is false while
	// metadata has not arrived yet or the duration is unknown.
	Duration() (seconds float64, ok bool)

	// Dimensions returns the native frame width and height in pixels.
	Dimensions() (width, height int)

	// Seek moves the playback position to t seconds and blocks until the
	// frame at that position is decoded or the context is cancelled.
	Seek(ctx context.Context, t float64) error

	// Position returns the current playback position in seconds.
	Position() float64

	// CurrentFrame returns the decoded frame at the current position, or nil
	// if no frame is readable (decode failure, position never sought).
	CurrentFrame() image.Image
}
