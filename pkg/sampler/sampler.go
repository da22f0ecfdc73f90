// Package sampler walks a frame source end-to-end at a fixed cadence,
// producing a restartable lazy sequence of downsampled frames for scene
// detection.
package sampler

import (
	"context"
	"image"
	"image/draw"
	"math"

	"github.com/user/sceneline/pkg/ports"
	"github.com/user/sceneline/pkg/timeline"
)

// Config controls the sampling cadence and the downsample resolution.
type Config struct {
	// AssumedFPS is the assumed decoded frame rate of the source.
	AssumedFPS float64
	// Stride samples every Nth decoded frame. With the defaults (30 fps,
	// stride 30) this is one sample per second.
	Stride int
	// Width and Height are the downsample target. Small frames bound the
	// diff cost per sample.
	Width  int
	Height int
}

// DefaultConfig returns the default sampling configuration.
func DefaultConfig() Config {
	return Config{
		AssumedFPS: 30.0,
		Stride:     30,
		Width:      160,
		Height:     90,
	}
}

// Interval returns the time between samples in seconds.
func (c Config) Interval() float64 {
	fps := c.AssumedFPS
	if fps <= 0 {
		fps = 30.0
	}
	stride := c.Stride
	if stride <= 0 {
		stride = 30
	}
	return float64(stride) / fps
}

// Sampler is a finite, restartable pull iterator over a frame source. It is
// not safe for concurrent use; detection drives it from a single flow.
type Sampler struct {
	source   ports.FrameSource
	renderer ports.Renderer
	logger   ports.Logger
	cfg      Config

	next float64
	done bool
}

// New creates a Sampler over the given source.
func New(source ports.FrameSource, renderer ports.Renderer, logger ports.Logger, cfg Config) *Sampler {
	return &Sampler{
		source:   source,
		renderer: renderer,
		logger:   logger.WithComponent("sampler"),
		cfg:      cfg,
	}
}

// Reset restarts the sequence from the beginning of the video.
func (s *Sampler) Reset() {
	s.next = 0
	s.done = false
}

// Total estimates the number of samples the full sequence will yield, for
// progress reporting. Returns 0 when the duration is unknown.
func (s *Sampler) Total() int {
	duration, ok := s.source.Duration()
	if !ok || !isFinite(duration) || duration <= 0 {
		return 0
	}
	return int(math.Floor(duration/s.cfg.Interval())) + 1
}

// Next yields the next sampled frame. ok is false once the sequence is
// exhausted. Decode failures and unknown durations terminate the sequence
// early rather than failing; callers treat an empty sequence as "no scenes
// could be detected". Context errors are returned so a cancelled detection
// pass stops between samples.
func (s *Sampler) Next(ctx context.Context) (timeline.SampledFrame, bool, error) {
	if s.done {
		return timeline.SampledFrame{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return timeline.SampledFrame{}, false, err
	}

	duration, known := s.source.Duration()
	if !known || !isFinite(duration) || duration <= 0 {
		s.done = true
		return timeline.SampledFrame{}, false, nil
	}
	if s.next >= duration {
		s.done = true
		return timeline.SampledFrame{}, false, nil
	}

	t := s.next
	if err := s.source.Seek(ctx, t); err != nil {
		if ctx.Err() != nil {
			return timeline.SampledFrame{}, false, ctx.Err()
		}
		s.logger.Warn("Seek to %.2fs failed, ending sample sequence: %s", t, err)
		s.done = true
		return timeline.SampledFrame{}, false, nil
	}

	frame := s.source.CurrentFrame()
	if frame == nil {
		s.logger.Warn("No frame readable at %.2fs, ending sample sequence", t)
		s.done = true
		return timeline.SampledFrame{}, false, nil
	}

	small := s.renderer.ResizeImage(frame, s.cfg.Width, s.cfg.Height)
	s.next += s.cfg.Interval()

	return timeline.SampledFrame{Timestamp: t, Pixels: toRGBA(small)}, true, nil
}

// toRGBA converts an image to RGBA without copying when it already is one.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
