// Package capture takes frame snapshots at arbitrary timestamps without
// disturbing the playback position of the underlying frame source.
package capture

import (
	"context"
	"time"

	"github.com/user/sceneline/pkg/ports"
)

// DefaultSeekTimeout bounds how long a snapshot waits for a seek to complete.
const DefaultSeekTimeout = 3 * time.Second

// DefaultJPEGQuality is the encoding quality for snapshot images.
const DefaultJPEGQuality = 85

// Snapshot is an encoded frame image at a timestamp. Snapshots are optional
// metadata: callers must keep working when one is unavailable.
type Snapshot struct {
	Data      []byte // JPEG
	Width     int
	Height    int
	Timestamp float64
}

// Capturer captures frame snapshots through a Renderer.
type Capturer struct {
	renderer ports.Renderer
	logger   ports.Logger
	timeout  time.Duration
	quality  int
}

// New creates a Capturer with the given seek timeout and JPEG quality.
// Non-positive values select the defaults.
func New(renderer ports.Renderer, logger ports.Logger, timeout time.Duration, quality int) *Capturer {
	if timeout <= 0 {
		timeout = DefaultSeekTimeout
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return &Capturer{
		renderer: renderer,
		logger:   logger.WithComponent("capture"),
		timeout:  timeout,
		quality:  quality,
	}
}

// Capture seeks the source to t, encodes the decoded frame at native
// resolution, and restores the prior position before returning. On timeout,
// decode error, or an unreadable frame it returns ok=false rather than an
// error; the position is restored in every case so interleaved playback never
// observes a capture-induced jump.
func (c *Capturer) Capture(ctx context.Context, source ports.FrameSource, t float64) (*Snapshot, bool) {
	prev := source.Position()
	defer c.restore(source, prev)

	seekCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := source.Seek(seekCtx, t); err != nil {
		c.logger.Warn("Snapshot capture at %.2fs failed: %s", t, err)
		return nil, false
	}

	frame := source.CurrentFrame()
	if frame == nil {
		c.logger.Warn("Snapshot capture at %.2fs failed: %s", t, "no frame readable")
		return nil, false
	}

	data, err := c.renderer.EncodeImage(frame, ports.FormatJPEG, c.quality)
	if err != nil {
		c.logger.Warn("Snapshot capture at %.2fs failed: %s", t, err)
		return nil, false
	}

	bounds := frame.Bounds()
	return &Snapshot{
		Data:      data,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Timestamp: t,
	}, true
}

// restore seeks back to the pre-capture position. It uses a fresh context so
// a cancelled capture still restores, and only logs on failure: there is
// nothing better to do with a source that no longer seeks.
func (c *Capturer) restore(source ports.FrameSource, prev float64) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := source.Seek(ctx, prev); err != nil {
		c.logger.Warn("Position restore to %.2fs failed: %s", prev, err)
	}
}
