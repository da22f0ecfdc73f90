// Package timeline provides the data model for videos, segments and scene
// boundaries, plus the pure query functions the editing UI is driven by.
package timeline

import (
	"fmt"
	"image"
	"math"
)

// VideoAsset describes a decodable media resource. Duration may arrive
// asynchronously after the asset is first referenced; DurationKnown reports
// whether it has. Once known, the duration is authoritative and immutable.
type VideoAsset struct {
	ID            string
	Duration      float64 // seconds
	DurationKnown bool
	Width         int
	Height        int
}

// DurationMs returns the asset duration in milliseconds, or 0 when unknown.
func (a VideoAsset) DurationMs() int64 {
	if !a.DurationKnown {
		return 0
	}
	return int64(math.Round(a.Duration * 1000))
}

// SampledFrame is an ephemeral downsampled pixel snapshot at a timestamp.
// It exists only during a detection pass and is never persisted.
type SampledFrame struct {
	Timestamp float64 // seconds
	Pixels    *image.RGBA
}

// Segment is a labeled time interval belonging to one VideoAsset. It holds a
// back-reference id only, never a live handle to the asset. CreationIndex is
// the original creation order and is used for deterministic styling and for
// the active-segment tie-break; it never changes once assigned.
type Segment struct {
	ID            string
	VideoID       string
	StartMs       int64
	EndMs         int64
	Description   string
	CreationIndex int
}

// Validate checks the segment interval invariant: end strictly after start,
// both within [0, durationMs]. Pass durationMs <= 0 to skip the upper bound
// (duration not yet known).
func (s Segment) Validate(durationMs int64) error {
	if s.EndMs <= s.StartMs {
		return fmt.Errorf("segment end %dms must be after start %dms", s.EndMs, s.StartMs)
	}
	if s.StartMs < 0 {
		return fmt.Errorf("segment start %dms is negative", s.StartMs)
	}
	if durationMs > 0 && s.EndMs > durationMs {
		return fmt.Errorf("segment end %dms exceeds video duration %dms", s.EndMs, durationMs)
	}
	return nil
}

// Contains reports whether the cursor time (seconds) falls within the
// segment's closed interval.
func (s Segment) Contains(cursor float64) bool {
	ms := int64(math.Round(cursor * 1000))
	return ms >= s.StartMs && ms <= s.EndMs
}

// BoundaryList is an ordered sequence of scene-cut timestamps in seconds for
// one video, always spanning [0, duration].
type BoundaryList []float64

// Validate checks the boundary list invariants: first element 0, last element
// equal to duration, strictly increasing, and no two adjacent boundaries
// closer than minGap except the final one, which is exempt so the last scene
// is never dropped.
func (b BoundaryList) Validate(duration, minGap float64) error {
	if len(b) < 2 {
		return fmt.Errorf("boundary list has %d elements, need at least 2", len(b))
	}
	if b[0] != 0 {
		return fmt.Errorf("boundary list must start at 0, got %g", b[0])
	}
	if b[len(b)-1] != duration {
		return fmt.Errorf("boundary list must end at duration %g, got %g", duration, b[len(b)-1])
	}
	for i := 1; i < len(b); i++ {
		if b[i] <= b[i-1] {
			return fmt.Errorf("boundaries not strictly increasing at index %d: %g <= %g", i, b[i], b[i-1])
		}
		last := i == len(b)-1
		if !last && b[i]-b[i-1] <= minGap {
			return fmt.Errorf("boundaries %g and %g closer than minimum gap %g", b[i-1], b[i], minGap)
		}
	}
	return nil
}

// Degraded reports whether the list is the single full-span fallback that
// detection returns when no frames could be sampled.
func (b BoundaryList) Degraded() bool {
	return len(b) == 2
}
