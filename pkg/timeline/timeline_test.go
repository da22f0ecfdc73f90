package timeline

import (
	"testing"
)

func TestActiveSegment_OutsideAllSegments(t *testing.T) {
	segments := []Segment{
		{StartMs: 0, EndMs: 1000, CreationIndex: 0},
		{StartMs: 2000, EndMs: 3000, CreationIndex: 1},
	}

	if _, ok := ActiveSegment(segments, 1.5); ok {
		t.Error("expected no active segment at 1.5s")
	}
	if _, ok := ActiveSegment(segments, 5.0); ok {
		t.Error("expected no active segment at 5.0s")
	}
	if _, ok := ActiveSegment(nil, 0); ok {
		t.Error("expected no active segment for empty collection")
	}
}

func TestActiveSegment_OverlapFirstCreatedWins(t *testing.T) {
	// Two overlapping segments: {0, [0,1000]} created first, {1, [500,1500]}
	// created second. Cursor at 700ms must return segment 0.
	segments := []Segment{
		{ID: "a", StartMs: 0, EndMs: 1000, CreationIndex: 0},
		{ID: "b", StartMs: 500, EndMs: 1500, CreationIndex: 1},
	}

	got, ok := ActiveSegment(segments, 0.7)
	if !ok {
		t.Fatal("expected an active segment at 700ms")
	}
	if got.ID != "a" {
		t.Errorf("expected first-created segment a, got %s", got.ID)
	}

	// The tie-break must not depend on slice order.
	reversed := []Segment{segments[1], segments[0]}
	got, ok = ActiveSegment(reversed, 0.7)
	if !ok || got.ID != "a" {
		t.Errorf("expected segment a regardless of slice order, got %s (ok=%v)", got.ID, ok)
	}
}

func TestActiveSegment_InclusiveBounds(t *testing.T) {
	segments := []Segment{{ID: "a", StartMs: 1000, EndMs: 2000, CreationIndex: 0}}

	for _, cursor := range []float64{1.0, 2.0} {
		if _, ok := ActiveSegment(segments, cursor); !ok {
			t.Errorf("cursor %gs: expected segment boundary to be inclusive", cursor)
		}
	}
}

func TestColorIndex_StableAcrossOrdering(t *testing.T) {
	s := Segment{CreationIndex: 11}

	first := ColorIndex(s, DefaultPaletteSize)
	for i := 0; i < 3; i++ {
		if got := ColorIndex(s, DefaultPaletteSize); got != first {
			t.Errorf("color index changed across calls: %d != %d", got, first)
		}
	}
	if first != 11%DefaultPaletteSize {
		t.Errorf("expected %d, got %d", 11%DefaultPaletteSize, first)
	}
}

func TestColorIndex_DefaultsPaletteSize(t *testing.T) {
	s := Segment{CreationIndex: 9}
	if got := ColorIndex(s, 0); got != 9%DefaultPaletteSize {
		t.Errorf("expected default palette size fallback, got %d", got)
	}
}

func TestSortedForDisplay(t *testing.T) {
	segments := []Segment{
		{ID: "a", StartMs: 0, EndMs: 1000, CreationIndex: 0},
		{ID: "b", StartMs: 2000, EndMs: 3000, CreationIndex: 1},
		{ID: "c", StartMs: 4000, EndMs: 5000, CreationIndex: 2},
	}

	got := SortedForDisplay(segments, 2.5)
	want := []string{"b", "a", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	// No active segment: original order preserved.
	got = SortedForDisplay(segments, 1.5)
	for i, s := range segments {
		if got[i].ID != s.ID {
			t.Errorf("position %d: expected %s, got %s", i, s.ID, got[i].ID)
		}
	}

	// Input is never mutated.
	if segments[0].ID != "a" || segments[1].ID != "b" {
		t.Error("input slice was reordered")
	}
}

func TestSegmentValidate(t *testing.T) {
	tests := []struct {
		name       string
		segment    Segment
		durationMs int64
		wantErr    bool
	}{
		{"valid", Segment{StartMs: 0, EndMs: 1000}, 2000, false},
		{"end equals start", Segment{StartMs: 500, EndMs: 500}, 2000, true},
		{"end before start", Segment{StartMs: 800, EndMs: 500}, 2000, true},
		{"negative start", Segment{StartMs: -1, EndMs: 500}, 2000, true},
		{"end past duration", Segment{StartMs: 0, EndMs: 2500}, 2000, true},
		{"unknown duration skips upper bound", Segment{StartMs: 0, EndMs: 2500}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.segment.Validate(tt.durationMs)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoundaryListValidate(t *testing.T) {
	tests := []struct {
		name     string
		list     BoundaryList
		duration float64
		wantErr  bool
	}{
		{"valid", BoundaryList{0, 4, 9, 12.4}, 12.4, false},
		{"final boundary exempt from gap", BoundaryList{0, 4, 9, 9.5}, 9.5, false},
		{"missing zero", BoundaryList{1, 4, 12.4}, 12.4, true},
		{"wrong final", BoundaryList{0, 4, 9}, 12.4, true},
		{"not increasing", BoundaryList{0, 4, 4, 12.4}, 12.4, true},
		{"interior gap violation", BoundaryList{0, 4, 5, 12.4}, 12.4, true},
		{"too short", BoundaryList{0}, 0, true},
		{"degraded fallback", BoundaryList{0, 12.4}, 12.4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.list.Validate(tt.duration, 2.0)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSegmentsFromBoundaries(t *testing.T) {
	b := BoundaryList{0, 4, 9, 12.4}
	segments := SegmentsFromBoundaries("video-1", b)

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	wantStarts := []int64{0, 4000, 9000}
	wantEnds := []int64{4000, 9000, 12400}
	for i, s := range segments {
		if s.StartMs != wantStarts[i] || s.EndMs != wantEnds[i] {
			t.Errorf("segment %d: got [%d,%d], want [%d,%d]", i, s.StartMs, s.EndMs, wantStarts[i], wantEnds[i])
		}
		if s.CreationIndex != i {
			t.Errorf("segment %d: creation index %d", i, s.CreationIndex)
		}
		if s.VideoID != "video-1" {
			t.Errorf("segment %d: video id %s", i, s.VideoID)
		}
	}

	if SegmentsFromBoundaries("video-1", BoundaryList{0}) != nil {
		t.Error("expected nil for short boundary list")
	}
}
