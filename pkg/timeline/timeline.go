package timeline

import "math"

// DefaultPaletteSize is the number of distinct segment colors cycled through
// by the display layer.
const DefaultPaletteSize = 8

// ActiveSegment returns the segment whose interval contains the cursor time
// (seconds). Overlapping segments are allowed; the segment with the smallest
// CreationIndex wins regardless of the current slice order. Returns ok=false
// when the cursor is outside every segment.
func ActiveSegment(segments []Segment, cursor float64) (Segment, bool) {
	var best Segment
	found := false
	for _, s := range segments {
		if !s.Contains(cursor) {
			continue
		}
		if !found || s.CreationIndex < best.CreationIndex {
			best = s
			found = true
		}
	}
	return best, found
}

// ColorIndex returns the deterministic palette slot for a segment. It depends
// only on the segment's original creation index, never on the current
// ordering of the collection.
func ColorIndex(s Segment, paletteSize int) int {
	if paletteSize <= 0 {
		paletteSize = DefaultPaletteSize
	}
	return s.CreationIndex % paletteSize
}

// SortedForDisplay returns a copy of segments with the active one (if any)
// moved to the front and all others preserved in their original relative
// order. It is a display convenience only; the input slice is not modified.
func SortedForDisplay(segments []Segment, cursor float64) []Segment {
	active, ok := ActiveSegment(segments, cursor)
	out := make([]Segment, 0, len(segments))
	if !ok {
		return append(out, segments...)
	}
	out = append(out, active)
	for _, s := range segments {
		if s.CreationIndex != active.CreationIndex {
			out = append(out, s)
		}
	}
	return out
}

// SegmentsFromBoundaries converts a boundary list into contiguous segment
// drafts for the given video, one per adjacent boundary pair. The drafts have
// no ids; persistence assigns them.
func SegmentsFromBoundaries(videoID string, b BoundaryList) []Segment {
	if len(b) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(b)-1)
	for i := 0; i < len(b)-1; i++ {
		segments = append(segments, Segment{
			VideoID:       videoID,
			StartMs:       int64(math.Round(b[i] * 1000)),
			EndMs:         int64(math.Round(b[i+1] * 1000)),
			CreationIndex: i,
		})
	}
	return segments
}
