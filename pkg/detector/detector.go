// Package detector implements frame-difference scene boundary detection.
package detector

import (
	"context"
	"image"

	"github.com/user/sceneline/pkg/ports"
	"github.com/user/sceneline/pkg/sampler"
	"github.com/user/sceneline/pkg/timeline"
)

// Options configures a detection pass.
type Options struct {
	// Threshold is the mean per-channel difference, as a fraction of the
	// full channel range, above which a sample is considered a scene cut.
	Threshold float64
	// MinGap is the minimum time in seconds between accepted boundaries.
	// The synthetic final boundary is exempt.
	MinGap float64
	// Sample controls the sampling cadence and downsample resolution.
	Sample sampler.Config
	// Progress, if set, is called after each sample with the number of
	// samples processed and the estimated total (0 when unknown).
	Progress func(sampled, total int)
}

// DefaultOptions returns the default detection parameters.
func DefaultOptions() Options {
	return Options{
		Threshold: 0.25,
		MinGap:    2.0,
		Sample:    sampler.DefaultConfig(),
	}
}

// DiffSample records the difference score of one sampled frame against its
// predecessor, for debugging and threshold tuning.
type DiffSample struct {
	Timestamp float64 `json:"timestamp"`
	Diff      float64 `json:"diff"`
}

// Result is the outcome of a detection pass. VideoID carries the originating
// asset identity so the orchestrator can discard stale results after the
// active video changes.
type Result struct {
	VideoID    string
	Boundaries timeline.BoundaryList
	// Degraded is true when no frames could be sampled and the boundary
	// list fell back to a single full-span scene.
	Degraded bool
	Trace    []DiffSample
}

// Detector detects scene boundaries by diffing downsampled frames.
type Detector struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// New creates a Detector.
func New(renderer ports.Renderer, logger ports.Logger) *Detector {
	return &Detector{
		renderer: renderer,
		logger:   logger.WithComponent("detector"),
	}
}

// DetectScenes walks the source once and returns its boundary list. The list
// always starts at 0 and ends at the asset duration. Sampling failures
// degrade to a single full-span scene rather than failing; the only error
// returned is context cancellation, in which case the partial result must be
// discarded by the caller.
func (d *Detector) DetectScenes(ctx context.Context, source ports.FrameSource, opts Options) (Result, error) {
	if opts.Threshold <= 0 {
		opts.Threshold = 0.25
	}
	if opts.MinGap <= 0 {
		opts.MinGap = 2.0
	}

	result := Result{VideoID: source.ID()}

	s := sampler.New(source, d.renderer, d.logger, opts.Sample)
	total := s.Total()

	boundaries := timeline.BoundaryList{0}
	lastBoundary := 0.0
	var lastFrame *timeline.SampledFrame
	sampled := 0

	for {
		frame, ok, err := s.Next(ctx)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			break
		}
		sampled++

		if lastFrame != nil {
			diff := frameDiff(lastFrame.Pixels, frame.Pixels)
			result.Trace = append(result.Trace, DiffSample{Timestamp: frame.Timestamp, Diff: diff})
			if diff > opts.Threshold && frame.Timestamp-lastBoundary > opts.MinGap {
				d.logger.Debug("Scene cut at %.2fs (diff %.3f)", frame.Timestamp, diff)
				boundaries = append(boundaries, frame.Timestamp)
				lastBoundary = frame.Timestamp
			}
		}
		lastFrame = &frame

		if opts.Progress != nil {
			opts.Progress(sampled, total)
		}
	}

	duration, known := source.Duration()
	if sampled == 0 {
		// Decode failure or unknown duration: degrade to a single
		// full-span scene instead of failing.
		d.logger.Warn("No frames sampled, falling back to single scene")
		if !known {
			duration = 0
		}
		result.Boundaries = fallbackBoundaries(duration)
		result.Degraded = true
		return result, nil
	}

	// The final boundary is always the duration, even within MinGap of its
	// predecessor, so the last scene is never dropped.
	if duration > lastBoundary {
		boundaries = append(boundaries, duration)
	}
	result.Boundaries = boundaries

	d.logger.Debug("Sampled %d frames, %d boundaries found", sampled, len(boundaries))
	return result, nil
}

// fallbackBoundaries returns the two-element degraded list. With an unknown
// duration both elements are 0 and the list is not a valid span; callers
// surface this to the user.
func fallbackBoundaries(duration float64) timeline.BoundaryList {
	return timeline.BoundaryList{0, duration}
}

// frameDiff computes the mean per-channel absolute difference between two
// equally sized RGBA buffers, normalized to [0,1] by the maximum channel
// value. The alpha channel is ignored.
func frameDiff(a, b *image.RGBA) float64 {
	if a == nil || b == nil {
		return 0
	}
	bounds := a.Bounds()
	if bounds != b.Bounds() {
		return 0
	}

	var sum uint64
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		off := a.PixOffset(bounds.Min.X, y)
		end := off + bounds.Dx()*4
		for i := off; i < end; i += 4 {
			sum += absDiff(a.Pix[i], b.Pix[i])
			sum += absDiff(a.Pix[i+1], b.Pix[i+1])
			sum += absDiff(a.Pix[i+2], b.Pix[i+2])
			n += 3
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / (float64(n) * 255.0)
}

func absDiff(a, b uint8) uint64 {
	if a > b {
		return uint64(a - b)
	}
	return uint64(b - a)
}
